// Package randsim provides the pseudo-random foundation shared by
// randomization policies:
//
// 1. A thread-safe, properly seeded, process-wide *math/rand.Rand (R).
// Reseeding R makes auto-seeded randomizers reproducible as a group.
//
// 2. Helper functions for common sampling/jitter use cases.
// ShouldSampleWithRate is for embedding randomization policies that apply
// to each target with a configured probability;
// the jitter helpers spread out timeouts and delays (retry backoff,
// breaker timeouts) so synchronized callers don't stampede.
//
// None of this package is suitable for security purposes.
// Use crypto/rand for that instead.
package randsim
