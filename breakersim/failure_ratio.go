// Package breakersim provides circuit breakers for collaborator waits.
//
// A host whose material library or async engine keeps failing (or hanging
// and then erroring) shouldn't be waited on by every settle barrier call.
// Wrapping the wait in a FailureRatioBreaker makes repeated failures trip
// the breaker so subsequent settle calls skip the wait until the
// collaborator recovers.
package breakersim

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"

	"github.com/metasim/metasim.go/internal/prometheusint"
	"github.com/metasim/metasim.go/log"
	"github.com/metasim/metasim.go/randsim"
)

const (
	nameLabel = "breaker"
)

var (
	breakerLabels = []string{
		nameLabel,
	}

	breakerClosed = promauto.With(prometheusint.GlobalRegistry).NewGaugeVec(prometheus.GaugeOpts{
		Name: "breakersim_closed",
		Help: "0 means the breaker is currently tripped, 1 otherwise (closed)",
	}, breakerLabels)

	breakerTimeout = promauto.With(prometheusint.GlobalRegistry).NewGaugeVec(prometheus.GaugeOpts{
		Name: "breakersim_jittered_timeout_seconds",
		Help: "The jittered timeout used by this breaker",
	}, breakerLabels)
)

// FailureRatioBreaker is a circuit breaker based on gobreaker that uses a
// low-water-mark and % failure threshold to trip.
type FailureRatioBreaker struct {
	goBreaker *gobreaker.CircuitBreaker

	name              string
	minRequestsToTrip int
	failureThreshold  float64
}

// Config represents the configuration for a FailureRatioBreaker.
type Config struct {
	// Minimum requests that need to be sent during a time period before the
	// breaker is eligible to transition from closed to open.
	MinRequestsToTrip int `yaml:"minRequestsToTrip"`

	// Percentage of requests that need to fail during a time period for the
	// breaker to transition from closed to open.
	// Represented as a float in [0,1], where .05 means >=5% failures will
	// trip the breaker.
	FailureThreshold float64 `yaml:"failureThreshold"`

	// Name for this circuit breaker, mostly used as a prefix to
	// disambiguate logs when multiple breakers are used.
	Name string `yaml:"name"`

	// MaxRequestsHalfOpen represents the maximum amount of requests that
	// will be allowed through while the breaker is in half-open state.
	// If left unset (or set to 0), exactly 1 request will be allowed
	// through while half-open.
	MaxRequestsHalfOpen uint32 `yaml:"maxRequestsHalfOpen"`

	// Interval represents the cyclical period of the 'Closed' state.
	// If 0, internal counts do not get reset while the breaker remains in
	// the Closed state.
	Interval time.Duration `yaml:"interval"`

	// Timeout is the duration of the 'Open' state. After an 'Open' timeout
	// duration has passed, the breaker enters 'half-open' state.
	Timeout time.Duration `yaml:"timeout"`

	// TimeoutJitterRatio is the jitter ratio to be applied to Timeout.
	//
	// Optional, default is 0.5, means the actual timeout used can be
	// Timeout+-50%.
	TimeoutJitterRatio *float64 `yaml:"timeoutJitterRatio"`
}

// NewFailureRatioBreaker creates a new FailureRatioBreaker with the provided
// configuration.
func NewFailureRatioBreaker(config Config) FailureRatioBreaker {
	failureBreaker := FailureRatioBreaker{
		name:              config.Name,
		minRequestsToTrip: config.MinRequestsToTrip,
		failureThreshold:  config.FailureThreshold,
	}
	jitterRatio := 0.5
	if config.TimeoutJitterRatio != nil {
		jitterRatio = *config.TimeoutJitterRatio
		if jitterRatio <= 0 || jitterRatio > 1 {
			log.Warnw(
				"Wrong breakersim TimeoutJitterRatio config, will be normalized",
				"name", config.Name,
				"value", jitterRatio,
			)
		}
	}
	timeout := randsim.JitterDuration(config.Timeout, jitterRatio)
	breakerTimeout.With(prometheus.Labels{
		nameLabel: config.Name,
	}).Set(timeout.Seconds())
	log.Debugw(
		"breakersim jittered timeout",
		"name", config.Name,
		"timeout", timeout,
		"origin", config.Timeout,
		"jitterRatio", jitterRatio,
	)
	settings := gobreaker.Settings{
		Name:          config.Name,
		Interval:      config.Interval,
		Timeout:       timeout,
		MaxRequests:   config.MaxRequestsHalfOpen,
		ReadyToTrip:   failureBreaker.shouldTrip,
		OnStateChange: failureBreaker.stateChanged,
	}

	failureBreaker.goBreaker = gobreaker.NewCircuitBreaker(settings)

	breakerClosed.With(prometheus.Labels{
		nameLabel: config.Name,
	}).Set(1)

	return failureBreaker
}

// Execute wraps the given function call in circuit breaker logic and returns
// the result.
func (cb FailureRatioBreaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	return cb.goBreaker.Execute(fn)
}

// State returns the current state of the breaker.
func (cb FailureRatioBreaker) State() gobreaker.State {
	return cb.goBreaker.State()
}

// shouldTrip checks if the circuit breaker should be tripped, based on the
// provided breaker counts.
func (cb FailureRatioBreaker) shouldTrip(counts gobreaker.Counts) bool {
	if counts.Requests > 0 && counts.Requests >= uint32(cb.minRequestsToTrip) {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		if failureRatio >= cb.failureThreshold {
			log.Warnw(
				"tripping circuit breaker",
				"name", cb.name,
				"counts", counts,
			)
			return true
		}
	}
	return false
}

func (cb FailureRatioBreaker) stateChanged(name string, from gobreaker.State, to gobreaker.State) {
	var value float64
	if to != gobreaker.StateOpen {
		value = 1
	}
	breakerClosed.With(prometheus.Labels{
		nameLabel: cb.name,
	}).Set(value)

	log.Infow(
		"circuit breaker state changed",
		"name", name,
		"from", from,
		"to", to,
	)
}

var (
	_ CircuitBreaker = FailureRatioBreaker{}
	_ CircuitBreaker = (*gobreaker.CircuitBreaker)(nil)
)
