// Package transport is the JSON-over-HTTP client for the project-management
// backend.
//
// Every request is sent relative to one API base URL. When a session token is
// available it is attached as a bearer credential. Each call carries an
// X-Request-ID, runs inside an OpenTelemetry client span, and propagates trace
// context. Non-2xx responses decode into [*APIError]; network and decode
// failures wrap [ErrRequestFailed].
//
// A 401 to a request that carried a token is reported through
// Config.OnUnauthorized so the owner can invalidate that session.
package transport
