// Package metasim provides the base building blocks for randomization
// policies running inside a simulation/rendering host runtime.
//
// The two pieces hosts care about are the seeded randomizer base (Base),
// which owns a deterministic per-instance random generator,
// and the render-settle barrier (Base.SyncVisualUpdates),
// which makes sure renderer and material state have converged before
// dependent sensors read back results.
//
// Concrete randomization policies embed Base, implement Randomize,
// and are bound to a Handler provided by the host adaptation layer.
// Optional host subsystems (material library, async task engine) register
// themselves through the matlib and asyncengine packages;
// when they are absent the barrier degrades to best-effort no-ops instead
// of failing.
package metasim
