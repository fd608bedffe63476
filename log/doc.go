// Package log provides the logging facade used throughout metasim.go.
//
// It wraps zap's sugared logger behind package-level functions,
// plus a Wrapper type for the places where a collaborator needs to be handed
// a minimal logging callback instead of a full logger.
//
// The global logger defaults to nop,
// so a host that never calls InitLogger gets silent best-effort behavior.
package log
