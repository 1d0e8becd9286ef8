// Package flows contains one orchestrator per backend call made by the Client.
//
// Each flow function (RunLogin, RunCreateInvite, RunRegister, etc.) accepts a
// typed dependency struct, speaks the backend wire contract, and maps the
// response into domain types. Contract DTOs live here and nowhere else.
//
// # Architecture boundaries
//
// Flow functions coordinate the HTTP caller and, for login, the session store.
// They do NOT own either; ownership stays with the Client.
//
// # What this package must NOT do
//
//   - Hold mutable state between calls.
//   - Import pmAuth (to avoid import cycles).
//   - Emit audit events or metrics; the Client does that around each call.
package flows
