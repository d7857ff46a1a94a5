package objectstore

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "operation only",
			err:  NewError("new", base),
			want: "objectstore.new: boom",
		},
		{
			name: "bucket and key",
			err:  NewObjectError("transfer", "audio", "clip.wav", base),
			want: "objectstore.transfer audio/clip.wav: boom",
		},
		{
			name: "bucket only",
			err:  &Error{Op: "list", Bucket: "video", Err: base},
			want: "objectstore.list bucket video: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, base)
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "nil",
			err:  nil,
			want: nil,
		},
		{
			name: "deadline exceeded",
			err:  fmt.Errorf("request: %w", context.DeadlineExceeded),
			want: ErrTimeout,
		},
		{
			name: "api rejection",
			err:  &types.NoSuchBucket{},
			want: ErrRejected,
		},
		{
			name: "connection refused message",
			err:  errors.New("dial tcp 127.0.0.1:443: connection refused"),
			want: ErrConnection,
		},
		{
			name: "timeout message",
			err:  errors.New("awaiting headers: timeout"),
			want: ErrTimeout,
		},
		{
			name: "already classified stays put",
			err:  fmt.Errorf("%w: earlier", ErrRejected),
			want: ErrRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestClassifyPreservesOriginal(t *testing.T) {
	inner := &types.NoSuchBucket{}
	got := Classify(inner)

	// The typed error stays reachable for callers that need detail.
	var noSuchBucket *types.NoSuchBucket
	assert.ErrorAs(t, got, &noSuchBucket)
}
