package pmAuth

import (
	"errors"

	"github.com/MrEthical07/pmAuth/guard"
	"github.com/MrEthical07/pmAuth/internal/flows"
	"github.com/MrEthical07/pmAuth/internal/transport"
	"github.com/MrEthical07/pmAuth/invite"
)

var (
	// ErrInvalidInput wraps client-side validation failures. No request was sent.
	ErrInvalidInput = invite.ErrInvalidInput
	// ErrSubmitInFlight is returned while the same operation is still pending.
	ErrSubmitInFlight = invite.ErrSubmitInFlight
	// ErrFlowClosed is returned when a closed flow receives a late response.
	ErrFlowClosed = invite.ErrFlowClosed
	// ErrNotRedeemable is returned when registering outside the VALID phase.
	ErrNotRedeemable = invite.ErrNotRedeemable
	// ErrInviteInvalid is the generic outcome for unknown, expired or consumed invites.
	ErrInviteInvalid = invite.ErrInviteInvalid
	// ErrSessionLoading is returned by gated operations before Initialize resolves.
	ErrSessionLoading = guard.ErrSessionLoading
	// ErrNotAuthenticated is returned by gated operations without a session.
	ErrNotAuthenticated = guard.ErrNotAuthenticated
	// ErrAccessDenied is returned by gated operations when the role does not qualify.
	ErrAccessDenied = guard.ErrAccessDenied
	// ErrRequestFailed wraps failures that produced no backend verdict.
	ErrRequestFailed = transport.ErrRequestFailed
	// ErrMalformedResponse is returned when a 2xx body breaks the contract.
	ErrMalformedResponse = flows.ErrMalformedResponse
	// ErrClientClosed is returned by operations after Close.
	ErrClientClosed = errors.New("client closed")
)

// APIError is a non-2xx backend response carrying its status and message.
type APIError = transport.APIError

// Fallback messages shown when the backend supplies none.
const (
	MessageLoginFailed        = "Login failed"
	MessageInviteFailed       = "Failed to create invite"
	MessageRegistrationFailed = "Registration failed"
	MessageLoadUsersFailed    = "Failed to load users"
	MessageRoleUpdateFailed   = "Failed update role"
	MessageStatusUpdateFailed = "Failed update status"
	MessageInviteInvalid      = "Invalid or Expired Invite"
	MessageAccessDenied       = "Access Denied: You do not have permission to view this page."
)

// UserMessage maps err to the text a user should see.
//
// A backend-provided message wins. Client-side validation errors are shown as
// they are. Everything else yields fallback. A nil err yields "".
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if msg, ok := transport.Message(err); ok {
		return msg
	}
	switch {
	case errors.Is(err, ErrInvalidInput):
		return err.Error()
	case errors.Is(err, ErrAccessDenied):
		return MessageAccessDenied
	case errors.Is(err, ErrInviteInvalid):
		return MessageInviteInvalid
	}
	return fallback
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Unauthorized()
}
