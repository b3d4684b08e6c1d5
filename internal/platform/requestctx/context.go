package requestctx

import (
	"context"

	"go.uber.org/zap"

	"finitefield.org/hanko-seo/internal/schema"
)

type contextKey string

const (
	loggerContextKey contextKey = "finitefield.org/hanko-seo/internal/platform/requestctx/logger"
	traceContextKey  contextKey = "finitefield.org/hanko-seo/internal/platform/requestctx/trace"
	stackContextKey  contextKey = "finitefield.org/hanko-seo/internal/platform/requestctx/schema-stack"
	localeContextKey contextKey = "finitefield.org/hanko-seo/internal/platform/requestctx/locale"
)

var noopLogger = zap.NewNop()

// TraceInfo captures trace metadata propagated through request context.
type TraceInfo struct {
	TraceID   string
	SpanID    string
	Sampled   bool
	ProjectID string
}

// WithLogger stores the logger in context for downstream consumers.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = noopLogger
	}
	return context.WithValue(ctx, loggerContextKey, logger)
}

// Logger retrieves the zap logger from context or returns a no-op logger.
func Logger(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return noopLogger
	}
	if logger, ok := ctx.Value(loggerContextKey).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return noopLogger
}

// NoopLogger exposes the shared noop logger instance used across the package.
func NoopLogger() *zap.Logger { return noopLogger }

// WithTrace stores the trace metadata on the context for downstream usage.
func WithTrace(ctx context.Context, info TraceInfo) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, traceContextKey, info)
}

// Trace retrieves the trace metadata from context when available.
func Trace(ctx context.Context) (TraceInfo, bool) {
	if ctx == nil {
		return TraceInfo{}, false
	}
	info, ok := ctx.Value(traceContextKey).(TraceInfo)
	return info, ok
}

// TraceID extracts the trace identifier from context when present.
func TraceID(ctx context.Context) string {
	info, _ := Trace(ctx)
	return info.TraceID
}

// WithSchemaStack attaches the render's schema stack. Each request must get
// its own stack; it is never shared across requests.
func WithSchemaStack(ctx context.Context, stack *schema.Stack) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, stackContextKey, stack)
}

// SchemaStack returns the stack attached to ctx, if any.
func SchemaStack(ctx context.Context) (*schema.Stack, bool) {
	if ctx == nil {
		return nil, false
	}
	stack, ok := ctx.Value(stackContextKey).(*schema.Stack)
	return stack, ok && stack != nil
}

// EnsureSchemaStack returns ctx's stack, attaching a fresh one when missing.
func EnsureSchemaStack(ctx context.Context) (context.Context, *schema.Stack) {
	if stack, ok := SchemaStack(ctx); ok {
		return ctx, stack
	}
	stack := schema.NewStack()
	return WithSchemaStack(ctx, stack), stack
}

// WithLocale stores the negotiated request locale.
func WithLocale(ctx context.Context, locale string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, localeContextKey, locale)
}

// Locale returns the negotiated request locale, or "".
func Locale(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	locale, _ := ctx.Value(localeContextKey).(string)
	return locale
}
