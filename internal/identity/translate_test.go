package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateResponse(t *testing.T) {
	tests := []struct {
		name   string
		status int
		msg    string
		want   error
	}{
		{
			name:   "conflict status",
			status: http.StatusConflict,
			msg:    "duplicate",
			want:   ErrAlreadyRegistered,
		},
		{
			name:   "already registered message",
			status: http.StatusUnprocessableEntity,
			msg:    "User already registered",
			want:   ErrAlreadyRegistered,
		},
		{
			name:   "invalid login credentials",
			status: http.StatusBadRequest,
			msg:    "Invalid login credentials",
			want:   ErrInvalidCredentials,
		},
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			msg:    "JWT expired",
			want:   ErrUnauthorized,
		},
		{
			name:   "gateway timeout message",
			status: http.StatusGatewayTimeout,
			msg:    "upstream request timeout",
			want:   ErrTimeout,
		},
		{
			name:   "worker timeout message",
			status: http.StatusServiceUnavailable,
			msg:    "context canceled after 29 seconds",
			want:   ErrTimeout,
		},
		{
			name:   "timed out message",
			status: http.StatusInternalServerError,
			msg:    "request timed out",
			want:   ErrTimeout,
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			msg:    "boom",
			want:   ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateResponse(tt.status, tt.msg)
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestTranslateResponseUnmapped(t *testing.T) {
	got := translateResponse(http.StatusBadRequest, "something else entirely")

	assert.Error(t, got)
	for _, sentinel := range []error{ErrAlreadyRegistered, ErrInvalidCredentials, ErrUnauthorized, ErrTimeout, ErrUnavailable} {
		assert.NotErrorIs(t, got, sentinel)
	}
}

func TestTranslateTransport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "deadline exceeded",
			err:  fmt.Errorf("post: %w", context.DeadlineExceeded),
			want: ErrTimeout,
		},
		{
			name: "timeout in message",
			err:  errors.New("dial tcp: i/o timeout"),
			want: ErrTimeout,
		},
		{
			name: "connection refused",
			err:  errors.New("dial tcp 127.0.0.1:443: connection refused"),
			want: ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateTransport(tt.err)
			assert.ErrorIs(t, got, tt.want)
		})
	}
}
