package objectstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPlan(t *testing.T) {
	tests := []struct {
		name          string
		sizeBytes     int64
		wantMultipart bool
		wantChunkSize int64
	}{
		{
			name:          "zero byte payload",
			sizeBytes:     0,
			wantMultipart: false,
			wantChunkSize: 512 * kib,
		},
		{
			name:          "small payload",
			sizeBytes:     1 * mib,
			wantMultipart: false,
			wantChunkSize: 512 * kib,
		},
		{
			name:          "exactly at multipart threshold",
			sizeBytes:     5 * mib,
			wantMultipart: false,
			wantChunkSize: 512 * kib,
		},
		{
			name:          "one byte over multipart threshold",
			sizeBytes:     5*mib + 1,
			wantMultipart: true,
			wantChunkSize: 512 * kib,
		},
		{
			name:          "mid-size payload keeps large chunks",
			sizeBytes:     30 * mib,
			wantMultipart: true,
			wantChunkSize: 512 * kib,
		},
		{
			name:          "exactly at large file cutoff",
			sizeBytes:     50 * mib,
			wantMultipart: true,
			wantChunkSize: 512 * kib,
		},
		{
			name:          "one byte over large file cutoff",
			sizeBytes:     50*mib + 1,
			wantMultipart: true,
			wantChunkSize: 256 * kib,
		},
		{
			name:          "large payload uses small chunks",
			sizeBytes:     200 * mib,
			wantMultipart: true,
			wantChunkSize: 256 * kib,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := BuildPlan(tt.sizeBytes)

			assert.Equal(t, tt.sizeBytes, plan.SizeBytes)
			assert.Equal(t, tt.wantMultipart, plan.Multipart)
			assert.Equal(t, tt.wantChunkSize, plan.ChunkSize)
			assert.Equal(t, 30, plan.MaxConcurrency)
			assert.Equal(t, 200, plan.IOQueueDepth)
			assert.Equal(t, int64(256*kib), plan.ReadChunkSize)
			assert.Equal(t, 15, plan.MaxRetryAttempts)
		})
	}
}

func TestBuildPlanDeterministic(t *testing.T) {
	for _, size := range []int64{0, 5 * mib, 50 * mib, 128 * mib} {
		assert.Equal(t, BuildPlan(size), BuildPlan(size))
	}
}

func TestPartCount(t *testing.T) {
	tests := []struct {
		name      string
		sizeBytes int64
		want      int
	}{
		{"zero size", 0, 0},
		{"single full chunk", 512 * kib, 1},
		{"partial last chunk", 512*kib + 1, 2},
		{"ten megabytes", 10 * mib, 20},
		{"large tier", 100 * mib, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := BuildPlan(tt.sizeBytes)
			assert.Equal(t, tt.want, plan.partCount())
		})
	}
}
