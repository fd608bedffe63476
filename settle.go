package metasim

import (
	"context"
	"errors"
	"fmt"
	"time"

	retry "github.com/avast/retry-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/metasim/metasim.go/asyncengine"
	"github.com/metasim/metasim.go/breakersim"
	"github.com/metasim/metasim.go/errorsim"
	"github.com/metasim/metasim.go/internal/prometheusint"
	"github.com/metasim/metasim.go/log"
	"github.com/metasim/metasim.go/matlib"
	"github.com/metasim/metasim.go/prometheussim"
	"github.com/metasim/metasim.go/retrysim"
)

const (
	settlePromNamespace = "settle"

	phaseLabel  = "phase"
	statusLabel = "status"

	materialsPhase  = "materials"
	passesPhase     = "passes"
	asyncFlushPhase = "async_flush"
)

var (
	settlePhaseLabels = []string{
		phaseLabel,
		statusLabel,
	}

	settlePhaseCounter = promauto.With(prometheusint.GlobalRegistry).NewCounterVec(prometheus.CounterOpts{
		Namespace: settlePromNamespace,
		Name:      "phase_total",
		Help:      "Total settle barrier phase executions, by phase and outcome",
	}, settlePhaseLabels)

	settleDuration = promauto.With(prometheusint.GlobalRegistry).NewHistogram(prometheus.HistogramOpts{
		Namespace: settlePromNamespace,
		Name:      "duration_seconds",
		Help:      "Duration of whole settle barrier invocations",
		Buckets:   prometheussim.DefaultBuckets,
	})
)

// DefaultSettlePasses is the number of settle passes hosts typically need
// for renderer-dependent state to converge.
//
// It's used by DefaultSettleConfig, not implied by a zero SettleConfig:
// a SettlePasses of 0 really means zero passes.
const DefaultSettlePasses = 3

// SettleConfig is the per-invocation configuration of the settle barrier.
//
// It's passed per call and never persisted by the barrier.
type SettleConfig struct {
	// WaitForMaterials makes the barrier block on the material library's
	// pending compiles before running settle passes.
	//
	// When false the material library is never contacted at all.
	WaitForMaterials bool `yaml:"waitForMaterials"`

	// SettlePasses is the number of zero-dt update/render/sensor-refresh
	// cycles to run.
	//
	// Negative values are treated as 0.
	SettlePasses int `yaml:"settlePasses"`

	// MaterialWaitAttempts is the number of attempts for the material
	// library wait.
	//
	// If 0, a single attempt is made.
	// Retries can also be configured per call site via retrysim.WithOptions
	// on the context, which takes priority.
	MaterialWaitAttempts uint `yaml:"materialWaitAttempts"`

	// MaterialLibrary overrides the process-global material library
	// registered via matlib.Set.
	//
	// Mainly useful in tests. If nil, matlib.Get() is used.
	MaterialLibrary matlib.Interface `yaml:"-"`

	// AsyncEngine overrides the process-global async engine registered via
	// asyncengine.Set.
	//
	// Mainly useful in tests. If nil, asyncengine.Get() is used.
	AsyncEngine asyncengine.Interface `yaml:"-"`

	// Breaker, when non-nil, guards the material-library and async-engine
	// waits, so a collaborator that keeps failing stops being waited on
	// until it recovers.
	//
	// A short-circuited wait is reported as skipped, not failed.
	Breaker breakersim.CircuitBreaker `yaml:"-"`
}

// DefaultSettleConfig returns the SettleConfig used by randomizers that
// don't carry their own: DefaultSettlePasses passes, no material wait.
func DefaultSettleConfig() SettleConfig {
	return SettleConfig{
		SettlePasses: DefaultSettlePasses,
	}
}

// PhaseStatus is the outcome of a single settle barrier phase.
type PhaseStatus int

// Enums for PhaseStatus.
const (
	// PhaseSucceeded means the phase ran to completion.
	PhaseSucceeded PhaseStatus = iota

	// PhaseSkipped means the phase had nothing to do:
	// it was disabled, the collaborator it needs isn't registered in this
	// deployment, or a configured breaker short-circuited it.
	PhaseSkipped

	// PhaseFailed means a present collaborator failed during the phase.
	PhaseFailed
)

func (s PhaseStatus) String() string {
	switch s {
	case PhaseSucceeded:
		return "succeeded"
	case PhaseSkipped:
		return "skipped"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown-%d", int(s))
	}
}

// PhaseResult is the result of a single settle barrier phase.
type PhaseResult struct {
	Status PhaseStatus

	// Err carries the detail for failed phases.
	//
	// A succeeded passes phase may still carry a non-nil Err:
	// an errorsim.Batch of the per-sensor/per-render failures that were
	// tolerated without aborting the phase.
	Err error
}

// SettleReport is the aggregated outcome of a SyncVisualUpdates call.
//
// The barrier itself never fails;
// callers that want visibility into degraded phases read the report,
// everyone else ignores it.
type SettleReport struct {
	Materials  PhaseResult
	Passes     PhaseResult
	AsyncFlush PhaseResult

	// CompletedPasses is the number of settle passes that ran to
	// completion before the phase ended or aborted.
	CompletedPasses int
}

// SyncVisualUpdates blocks until renderer and material state have converged,
// so sensors read afterwards observe fully-committed results.
//
// It executes three strictly ordered, isolated phases:
// the material-compile wait (if enabled), the zero-dt settle passes,
// and the async task flush.
// A failure in one phase never prevents the next from being attempted,
// and nothing is ever raised to the caller:
// every degradation ends up as a log entry and a PhaseResult in the report.
//
// This is a best-effort convergence point, not a correctness-critical
// guarantee: the collaborators it drives are optional in some deployments
// (headless hosts, stripped test handlers), and randomization must never be
// blocked by synchronization failures.
func (b *Base) SyncVisualUpdates(ctx context.Context, cfg SettleConfig) SettleReport {
	start := time.Now()
	defer func() {
		settleDuration.Observe(time.Since(start).Seconds())
	}()

	var report SettleReport
	report.Materials = b.waitForMaterials(ctx, cfg)
	observePhase(materialsPhase, report.Materials)

	report.Passes, report.CompletedPasses = b.settleFrames(ctx, cfg)
	observePhase(passesPhase, report.Passes)

	report.AsyncFlush = b.flushAsyncTasks(ctx, cfg)
	observePhase(asyncFlushPhase, report.AsyncFlush)

	return report
}

func observePhase(phase string, result PhaseResult) {
	settlePhaseCounter.With(prometheus.Labels{
		phaseLabel:  phase,
		statusLabel: result.Status.String(),
	}).Inc()
}

// waitForMaterials blocks until pending material compiles finish.
func (b *Base) waitForMaterials(ctx context.Context, cfg SettleConfig) PhaseResult {
	if !cfg.WaitForMaterials {
		return PhaseResult{Status: PhaseSkipped}
	}

	lib := cfg.MaterialLibrary
	if lib == nil {
		lib = matlib.Get()
	}

	defaults := []retry.Option{
		// Retrying can't conjure up an unregistered library.
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, matlib.ErrNotRegistered)
		}),
	}
	if cfg.MaterialWaitAttempts > 0 {
		defaults = append(defaults, retry.Attempts(cfg.MaterialWaitAttempts))
	}

	err := runGuarded(cfg.Breaker, matlib.ErrNotRegistered, func() error {
		return retrysim.Do(ctx, lib.WaitForPendingWork, defaults...)
	})
	switch {
	case err == nil:
		return PhaseResult{Status: PhaseSucceeded}
	case errors.Is(err, matlib.ErrNotRegistered):
		log.C(ctx).Debugw(
			"Material library not available, skipping wait",
			"err", err,
		)
		return PhaseResult{Status: PhaseSkipped, Err: err}
	case breakersim.IsBreakerError(err):
		log.C(ctx).Debugw(
			"Material library wait short-circuited by breaker",
			"err", err,
		)
		return PhaseResult{Status: PhaseSkipped, Err: err}
	default:
		log.C(ctx).Warnw(
			"Failed to wait for pending material work",
			"err", err,
		)
		return PhaseResult{Status: PhaseFailed, Err: err}
	}
}

// settleFrames runs zero-dt updates + renders so sensors see the final
// state.
func (b *Base) settleFrames(ctx context.Context, cfg SettleConfig) (PhaseResult, int) {
	handler := b.handler
	if handler == nil {
		return PhaseResult{Status: PhaseSkipped}, 0
	}
	scene := handler.Scene()
	if scene == nil {
		return PhaseResult{Status: PhaseSkipped}, 0
	}
	sim := handler.Sim()

	passes := cfg.SettlePasses
	if passes < 0 {
		passes = 0
	}

	var completed int
	var tolerated errorsim.Batch
	for i := 0; i < passes; i++ {
		if err := runIsolated(func() error {
			return scene.Update(0)
		}); err != nil {
			log.C(ctx).Debugw(
				"Scene update during settle failed, aborting remaining passes",
				"pass", i,
				"err", err,
			)
			tolerated.AddPrefix("scene", err)
			return PhaseResult{
				Status: PhaseFailed,
				Err:    tolerated.Compile(),
			}, completed
		}

		if sim != nil {
			if err := runIsolated(func() error {
				if sim.HasGUI() || sim.HasRTXSensors() {
					return sim.Render()
				}
				return nil
			}); err != nil {
				log.C(ctx).Debugw(
					"Sim render during settle failed",
					"pass", i,
					"err", err,
				)
				tolerated.AddPrefix("render", err)
			}
		}

		// Each sensor is updated independently:
		// one failing sensor must not block the remaining ones.
		for name, sensor := range scene.Sensors() {
			sensor := sensor
			if err := runIsolated(func() error {
				return sensor.Update(0)
			}); err != nil {
				log.C(ctx).Debugw(
					"Sensor update during settle failed",
					"sensor", name,
					"pass", i,
					"err", err,
				)
				tolerated.AddPrefix(name, err)
			}
		}

		completed++
	}

	return PhaseResult{
		Status: PhaseSucceeded,
		Err:    tolerated.Compile(),
	}, completed
}

// flushAsyncTasks flushes the host engine's async tasks so downstream reads
// observe committed data.
func (b *Base) flushAsyncTasks(ctx context.Context, cfg SettleConfig) PhaseResult {
	engine := cfg.AsyncEngine
	if engine == nil {
		engine = asyncengine.Get()
	}

	err := runGuarded(cfg.Breaker, asyncengine.ErrNotRegistered, engine.WaitForTasks)
	switch {
	case err == nil:
		return PhaseResult{Status: PhaseSucceeded}
	case errors.Is(err, asyncengine.ErrNotRegistered):
		log.C(ctx).Debugw(
			"Async engine not available, skipping task flush",
			"err", err,
		)
		return PhaseResult{Status: PhaseSkipped, Err: err}
	case breakersim.IsBreakerError(err):
		log.C(ctx).Debugw(
			"Async task flush short-circuited by breaker",
			"err", err,
		)
		return PhaseResult{Status: PhaseSkipped, Err: err}
	default:
		log.C(ctx).Warnw(
			"Failed to wait for async tasks",
			"err", err,
		)
		return PhaseResult{Status: PhaseFailed, Err: err}
	}
}

// runGuarded runs fn through the breaker when one is configured,
// recovering panics from collaborator code either way.
//
// Errors matching notRegistered report a collaborator that simply isn't
// present in this deployment.
// Those must not count against the breaker's failure ratio:
// a host with no material library would otherwise trip the shared breaker
// and short-circuit the remaining phases for perfectly healthy
// collaborators.
func runGuarded(breaker breakersim.CircuitBreaker, notRegistered error, fn func() error) error {
	if breaker == nil {
		return runIsolated(fn)
	}
	v, err := breaker.Execute(func() (interface{}, error) {
		if err := runIsolated(fn); err != nil {
			if errors.Is(err, notRegistered) {
				return err, nil
			}
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return err
	}
	if e, _ := v.(error); e != nil {
		return e
	}
	return nil
}

// runIsolated turns a panic from collaborator code into an error,
// honoring the contract that the barrier never raises to its caller.
func runIsolated(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("metasim: panic during settle: %v", p)
		}
	}()
	return fn()
}
