package identity

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// timeoutMarkers are the provider message fragments that mean a
// gateway-level timeout. This is the only place in the codebase that
// matches on provider text; everything above it uses the sentinels.
var timeoutMarkers = []string{
	"timeout",
	"timed out",
	"after 29 seconds",
}

// translateTransport maps a transport-level error (no HTTP response at
// all) onto the taxonomy.
func translateTransport(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	if containsTimeoutMarker(err.Error()) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

// translateResponse maps a non-2xx provider response onto the taxonomy.
func translateResponse(status int, providerMsg string) error {
	msg := strings.ToLower(providerMsg)

	switch {
	case containsTimeoutMarker(msg):
		return fmt.Errorf("%w: provider said %q", ErrTimeout, providerMsg)

	case status == http.StatusConflict,
		strings.Contains(msg, "already registered"),
		strings.Contains(msg, "already been registered"):
		return ErrAlreadyRegistered

	case strings.Contains(msg, "invalid login credentials"),
		strings.Contains(msg, "invalid grant"):
		return ErrInvalidCredentials

	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrUnauthorized

	case status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: provider returned %d: %s", ErrUnavailable, status, providerMsg)
	}

	return fmt.Errorf("identity: provider returned %d: %s", status, providerMsg)
}

func containsTimeoutMarker(msg string) bool {
	msg = strings.ToLower(msg)
	for _, marker := range timeoutMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
