// Package session holds the client-side session: the bearer token returned by the
// backend together with the identity it authenticates.
//
// # Store
//
// [Store] is the single source of truth for "who is logged in". It is created
// in the loading state, hydrated once from a persistence [Backend] by
// [Store.Initialize], and mutated only through [Store.Login], [Store.Logout]
// and [Store.Invalidate]. Every mutation sets or clears token and user
// together; a partial session is unreachable through this API.
//
// # Persistence
//
// The persisted record is stored under one fixed key ([DefaultKey]) in a
// durable key-value [Backend]: in-memory, SQLite, or Redis. Records carry a
// schema version byte and a JSON body. Read and write failures are logged and
// swallowed; a failed restore behaves exactly like "no session".
//
// # What this package must NOT do
//
//   - Perform authentication round trips (callers pass an already-issued token).
//   - Derive or change roles and statuses locally.
//   - Import pmAuth, guard, or invite.
package session
