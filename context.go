package pmAuth

import (
	"context"

	"github.com/google/uuid"

	"github.com/MrEthical07/pmAuth/internal/transport"
)

// WithRequestID attaches a request id to ctx. Backend calls made with ctx send
// it as X-Request-ID and audit events record it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return transport.WithRequestID(ctx, id)
}

// ensureRequestID gives every operation one id shared by its request and its
// audit event.
func ensureRequestID(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if transport.RequestIDFromContext(ctx) != "" {
		return ctx
	}
	return transport.WithRequestID(ctx, uuid.NewString())
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	return transport.RequestIDFromContext(ctx)
}
