package log

import (
	"context"
	"os"

	"go.uber.org/zap"
)

type loggerKey struct{}

var defaultLogger *zap.Logger

func init() {
	var err error
	if os.Getenv("DEBUG") != "" {
		defaultLogger, err = zap.NewDevelopment()
	} else {
		defaultLogger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
}

// Logger returns the logger attached to the context, or the default logger
func Logger(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return l
	}
	return defaultLogger
}

// With returns a context whose logger carries the given key/value pairs
func With(ctx context.Context, args ...interface{}) context.Context {
	return New(ctx, Logger(ctx).Sugar().With(args...).Desugar())
}

// New returns a context carrying the given logger
func New(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// Fatal logs the message on the default logger and exits
func Fatal(msg string, fields ...zap.Field) {
	defaultLogger.Fatal(msg, fields...)
}
