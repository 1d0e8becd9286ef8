// Package invite implements invite-based onboarding from the client side.
//
// # Components
//
//   - [Issuer]: admin-initiated invite creation and shareable link composition.
//   - [Redemption]: the explicit CHECKING / NO_TOKEN / INVALID / VALID /
//     REGISTERED state machine that validates an invite token and then
//     consumes it through registration.
//
// # Architecture boundaries
//
// Invite state lives entirely in the backend. This package holds only the
// token string and transient flow state; every validate and consume is a round
// trip through the caller-supplied [Creator], [Checker] and [Registrar].
//
// # What this package must NOT do
//
//   - Cache invite validity across a registration attempt.
//   - Authenticate the user after registration.
//   - Import pmAuth or any internal package.
package invite
