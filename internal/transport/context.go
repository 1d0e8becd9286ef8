package transport

import "context"

type requestIDContextKey struct{}

type credentialExchangeKey struct{}

// WithRequestID attaches a request id to ctx. Requests made with ctx send it as
// X-Request-ID instead of a generated one.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, id)
}

// RequestIDFromContext returns the id attached by WithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}

// WithCredentialExchange marks ctx as carrying a credential exchange. A 401 on
// such a request is a verdict on the submitted credentials, so OnUnauthorized
// is not called for it.
func WithCredentialExchange(ctx context.Context) context.Context {
	return context.WithValue(ctx, credentialExchangeKey{}, true)
}

func isCredentialExchange(ctx context.Context) bool {
	v, _ := ctx.Value(credentialExchangeKey{}).(bool)
	return v
}
