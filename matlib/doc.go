// Package matlib defines the capability interface for the host's material
// library used by metasim.go.
//
// A material library compiles shader/material definitions asynchronously,
// so after a randomization mutates materials the settle barrier needs a way
// to block until pending compiles finish.
// The actual implementation is provided by the host adaptation layer
// (e.g. a renderer integration), which registers it via Set.
// Headless or stripped-down deployments simply never call Set,
// and the barrier degrades to a no-op for this phase.
package matlib
