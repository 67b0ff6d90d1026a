package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/sony/gobreaker"

	"github.com/valpere/pandulipi/internal"
)

// BreakerService wraps a Service with a circuit breaker so a failing
// backend fails fast instead of holding every request for a full timeout.
// An open breaker surfaces as a ServiceError, consistent with the no-retry
// contract of the underlying capability.
type BreakerService struct {
	inner Service
	cb    *gobreaker.CircuitBreaker
}

func WithBreaker(inner Service) *BreakerService {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        inner.Name(),
		MaxRequests: 1,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
	return &BreakerService{inner: inner, cb: cb}
}

func (s *BreakerService) Name() string { return s.inner.Name() }

func (s *BreakerService) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := s.cb.Execute(func() (interface{}, error) {
		return s.inner.Complete(ctx, prompt)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", &internal.ServiceError{Service: s.Name(), Err: fmt.Errorf("circuit breaker open: %w", err)}
		}
		var se *internal.ServiceError
		if errors.As(err, &se) {
			return "", err
		}
		return "", &internal.ServiceError{Service: s.Name(), Err: err}
	}
	return out.(string), nil
}
