// Package pmAuth is the authentication and onboarding client for the
// project-management backend.
//
// A [Client] owns one session store, the invite issuer and redemption flows,
// and the user-management calls. Every protected operation is checked with the
// access guard before any network call is made; the backend stays
// authoritative.
//
// Client methods are safe to call from multiple goroutines after construction
// through [Builder.Build].
//
// # Architecture boundaries
//
// pmAuth is the public surface. It exposes [Client], [Builder], [Config], and
// value types (MetricsSnapshot, AuditEvent, etc.). Wire contracts, HTTP
// transport, audit dispatch and config loading live under internal/ and are
// never exported.
//
// # What this package must NOT do
//
//   - Hold ambient global state. Each Client is constructed explicitly.
//   - Derive or escalate a user's role or status locally.
//   - Log credentials or tokens.
package pmAuth
