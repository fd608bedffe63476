package matlib

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/metasim/metasim.go/internal/prometheusint"
	"github.com/metasim/metasim.go/log"
)

const (
	promNamespace = "matlib"
)

var (
	getBeforeSet = promauto.With(prometheusint.GlobalRegistry).NewCounter(prometheus.CounterOpts{
		Namespace: promNamespace,
		Name:      "get_before_set_total",
		Help:      "Total number of matlib.Get calls before Set is called",
	})
)

// Logger is used by Get when it's called before Set is called.
var Logger log.Wrapper

// ErrNotRegistered is the error returned by the nop implementation Get
// falls back to when it's called before Set is called.
var ErrNotRegistered = errors.New("matlib: no material library registered")

// actual type: Interface
var global atomic.Value

// Set sets the global material library implementation.
func Set(impl Interface) {
	global.Store(impl)
}

// Get returns the previously Set global material library implementation.
//
// It's guaranteed to return a non-nil implementation.
// If it's called before any Set is called,
// it logs the event (via Logger),
// then returns an implementation whose WaitForPendingWork always returns
// ErrNotRegistered,
// so callers can distinguish a missing library from a failing one.
func Get() Interface {
	v := global.Load()
	if impl, _ := v.(Interface); impl != nil {
		return impl
	}
	Logger.Log(context.Background(), ErrNotRegistered.Error())
	getBeforeSet.Inc()
	return nopImpl
}

type nop struct{}

var nopImpl nop

func (nop) WaitForPendingWork() error {
	return ErrNotRegistered
}
