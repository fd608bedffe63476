package breakersim

import (
	"errors"

	"github.com/sony/gobreaker"
)

// CircuitBreaker is the interface that metasim expects a circuit breaker to
// implement.
type CircuitBreaker interface {
	// Execute should wrap the given function call in circuit breaker logic
	// and return the result.
	Execute(func() (interface{}, error)) (interface{}, error)
}

// IsBreakerError reports whether err came from the breaker short-circuiting
// the call, rather than from the wrapped function itself.
func IsBreakerError(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) ||
		errors.Is(err, gobreaker.ErrTooManyRequests)
}
