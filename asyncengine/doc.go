// Package asyncengine defines the capability interface for the host
// engine's background task queue used by metasim.go.
//
// Rendering hosts typically run a queue of asynchronous tasks
// (texture uploads, USD notices, deferred scene edits).
// The settle barrier flushes this queue as its final phase so downstream
// sensor reads observe fully committed data.
// The host adaptation layer registers its implementation via Set;
// deployments without such a queue never call Set and the flush phase
// degrades to a no-op.
package asyncengine
