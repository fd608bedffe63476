// Package retrysim provides middlewares and configuration for retrying
// best-effort waits on host collaborators,
// based on the github.com/avast/retry-go package.
//
// It overrides the upstream default options to be:
//
//	retry.Attempts(1)
//	retry.Delay(1 * time.Millisecond)
//	retry.MaxJitter(5 * time.Millisecond)
//	CappedExponentialBackoff(CappedExponentialBackoffArgs{
//		InitialDelay: time.Millisecond,
//		MaxJitter:    5 * time.Millisecond,
//	})
//	retry.LastErrorOnly(false)
//
// The single-attempt default means calls through this package don't retry
// unless explicitly asked to.
package retrysim
