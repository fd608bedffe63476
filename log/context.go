package log

import (
	"context"

	"go.uber.org/zap"
)

type contextKeyType struct{}

var contextKey contextKeyType

// AttachArgs are used to create loggers to be attached to context objects
// with pre-filled key-value pairs.
//
// All zero value fields will be ignored and only non-zero values will be
// attached.
type AttachArgs struct {
	// Randomizer identifies the randomization policy driving this context,
	// e.g. its String() value.
	Randomizer string

	// Seed is the resolved seed of the randomizer, for reproducing a run
	// from its logs.
	Seed *int64

	// AdditionalPairs are provided to add any free form, additional
	// key-value pairs you want to attach to all logs from the same context
	// object.
	AdditionalPairs map[string]interface{}
}

// Attach attaches a logger with data extracted from args into the context
// object.
func Attach(ctx context.Context, args AttachArgs) context.Context {
	// Number of non-AdditionalPairs fields in AttachArgs struct.
	const additional = 2
	kv := make([]interface{}, 0, len(args.AdditionalPairs)*2+additional)

	if args.Randomizer != "" {
		kv = append(kv, zap.String("randomizer", args.Randomizer))
	}
	if args.Seed != nil {
		kv = append(kv, zap.Int64("seed", *args.Seed))
	}

	for k, v := range args.AdditionalPairs {
		kv = append(kv, k, v)
	}

	logger := C(ctx)
	if len(kv) == 0 {
		// Attaching the logger anyway makes subsequent log.C(ctx) calls
		// faster.
		return context.WithValue(ctx, contextKey, logger)
	}
	return context.WithValue(ctx, contextKey, logger.With(kv...))
}

// C is short for Context.
//
// It extracts the logger attached to the current context object,
// and falls back to the global logger if none is found.
//
// When you have a context object and want to do logging,
// you should always use this one instead of the global one.
// For example:
//
//	log.C(ctx).Errorw("Something went wrong!", "err", err)
//
// The return value is guaranteed to be non-nil.
func C(ctx context.Context) *zap.SugaredLogger {
	if logger, ok := ctx.Value(contextKey).(*zap.SugaredLogger); ok && logger != nil {
		return logger
	}
	return globalLogger
}
