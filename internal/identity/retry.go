package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// registrationRetries is the number of retries after the first
	// attempt, so a registration makes at most three attempts total.
	registrationRetries = 2

	registrationInitialInterval = 2 * time.Second
)

// defaultRegistrationBackOff is the registration retry schedule: 2s
// after the first failure, 4s after the second, no jitter.
func defaultRegistrationBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = registrationInitialInterval
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = time.Minute
	b.MaxElapsedTime = 0
	return b
}

// Register creates an account, retrying only provider timeouts. A
// duplicate email fails immediately; any other failure is also
// permanent. When every attempt times out the caller gets
// ErrUnavailable, since the provider may well have registered the
// account on an attempt whose response never arrived.
func (c *Client) Register(ctx context.Context, creds Credentials) (*Session, error) {
	var session *Session
	attempt := 0

	operation := func() error {
		attempt++
		s, err := c.SignUp(ctx, creds)
		if err != nil {
			if errors.Is(err, ErrTimeout) {
				c.logger.Warn("registration attempt timed out",
					"attempt", attempt,
					"email", creds.Email,
				)
				return err
			}
			return backoff.Permanent(err)
		}
		session = s
		return nil
	}

	b := backoff.WithMaxRetries(c.newBackOff(), registrationRetries)
	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		if errors.Is(err, ErrTimeout) {
			return nil, fmt.Errorf("%w: registration timed out after %d attempts", ErrUnavailable, attempt)
		}
		return nil, err
	}
	return session, nil
}
