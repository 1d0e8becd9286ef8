package invite

import "errors"

var (
	// ErrInvalidInput wraps client-side validation failures. No network call
	// was made.
	ErrInvalidInput = errors.New("invalid input")
	// ErrSubmitInFlight is returned when a submission is attempted while the
	// previous one is still waiting for the backend.
	ErrSubmitInFlight = errors.New("submission already in flight")
	// ErrFlowClosed is returned when the flow was closed while a request was
	// pending. The response was discarded.
	ErrFlowClosed = errors.New("flow closed")
	// ErrNotRedeemable is returned by Submit outside the VALID phase.
	ErrNotRedeemable = errors.New("invite is not redeemable in the current phase")
	// ErrInviteInvalid is the single user-facing outcome for an unknown,
	// expired or consumed invite.
	ErrInviteInvalid = errors.New("invalid or expired invite")
)
