package log

import (
	"context"
	stdlog "log"
	"testing"

	"go.uber.org/zap/zapcore"
)

// Wrapper is a simple wrapper of a logging function.
//
// The hosts embedding this library don't always use the same logging
// library we do.
// Wrapper is a simple common ground that it's easy to wrap whatever logging
// library they use into.
type Wrapper func(ctx context.Context, msg string)

// Log is the nil-safe way of using a Wrapper.
//
// If w is nil it does nothing, otherwise it calls the underlying function.
func (w Wrapper) Log(ctx context.Context, msg string) {
	if w != nil {
		w(ctx, msg)
	}
}

// NopWrapper is a Wrapper implementation that does nothing.
func NopWrapper(ctx context.Context, msg string) {}

// StdWrapper wraps stdlib log package into a Wrapper.
func StdWrapper(logger *stdlog.Logger) Wrapper {
	if logger == nil {
		return NopWrapper
	}
	return func(_ context.Context, msg string) {
		logger.Print(msg)
	}
}

// TestWrapper is a wrapper can be used in test codes.
//
// It fails the test when called.
func TestWrapper(tb testing.TB) Wrapper {
	return func(_ context.Context, msg string) {
		tb.Errorf("logger called with msg: %q", msg)
	}
}

// ZapWrapper wraps zap log package into a Wrapper.
func ZapWrapper(logLevel zapcore.Level) Wrapper {
	return func(ctx context.Context, msg string) {
		logger := C(ctx)
		switch logLevel {
		default:
			// for unknown values, fallback to info level.
			fallthrough
		case zapcore.InfoLevel:
			logger.Info(msg)
		case zapcore.DebugLevel:
			logger.Debug(msg)
		case zapcore.WarnLevel:
			logger.Warn(msg)
		case zapcore.ErrorLevel:
			logger.Error(msg)
		case zapcore.PanicLevel:
			logger.Panic(msg)
		case zapcore.FatalLevel:
			logger.Fatal(msg)
		case ZapNopLevel:
			// do nothing
		}
	}
}

var (
	_ Wrapper = NopWrapper
)
