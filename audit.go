package pmAuth

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	internalaudit "github.com/MrEthical07/pmAuth/internal/audit"
	"github.com/MrEthical07/pmAuth/internal/transport"
)

// AuditEvent is one audit record. It never carries tokens or passwords.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the client's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

const (
	auditEventLoginSuccess        = "login_success"
	auditEventLoginFailure        = "login_failure"
	auditEventLogout              = "logout"
	auditEventSessionRestored     = "session_restored"
	auditEventSessionInvalidated  = "session_invalidated"
	auditEventInviteCreated       = "invite_created"
	auditEventInviteFailure       = "invite_failure"
	auditEventInviteValidated     = "invite_validated"
	auditEventInviteInvalid       = "invite_invalid"
	auditEventRegistrationSuccess = "registration_success"
	auditEventRegistrationFailure = "registration_failure"
	auditEventUserRoleChanged     = "user_role_changed"
	auditEventUserStatusChanged   = "user_status_changed"
	auditEventAccessDenied        = "access_denied"
)

// AuditErrorCode is the coarse failure class recorded on failed events.
type AuditErrorCode string

const (
	auditErrInvalidInput      AuditErrorCode = "invalid_input"
	auditErrInFlight          AuditErrorCode = "in_flight"
	auditErrSessionLoading    AuditErrorCode = "session_loading"
	auditErrNotAuthenticated  AuditErrorCode = "not_authenticated"
	auditErrAccessDenied      AuditErrorCode = "access_denied"
	auditErrUnauthorized      AuditErrorCode = "unauthorized"
	auditErrForbidden         AuditErrorCode = "forbidden"
	auditErrRejected          AuditErrorCode = "rejected"
	auditErrBackendError      AuditErrorCode = "backend_error"
	auditErrUnavailable       AuditErrorCode = "backend_unavailable"
	auditErrMalformedResponse AuditErrorCode = "malformed_response"
	auditErrInviteInvalid     AuditErrorCode = "invite_invalid"
	auditErrInternal          AuditErrorCode = "internal_error"
)

func (c *Client) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	userID string,
	email string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if c == nil || c.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		UserID:    userID,
		Email:     email,
		RequestID: requestIDFromContext(ctx),
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	c.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	switch {
	case errors.Is(err, ErrInvalidInput):
		return auditErrInvalidInput
	case errors.Is(err, ErrSubmitInFlight):
		return auditErrInFlight
	case errors.Is(err, ErrSessionLoading):
		return auditErrSessionLoading
	case errors.Is(err, ErrNotAuthenticated):
		return auditErrNotAuthenticated
	case errors.Is(err, ErrAccessDenied):
		return auditErrAccessDenied
	case errors.Is(err, ErrInviteInvalid):
		return auditErrInviteInvalid
	case errors.Is(err, ErrMalformedResponse):
		return auditErrMalformedResponse
	case transport.IsTransportFailure(err):
		return auditErrUnavailable
	case errors.As(err, &apiErr):
		switch {
		case apiErr.Status == http.StatusUnauthorized:
			return auditErrUnauthorized
		case apiErr.Status == http.StatusForbidden:
			return auditErrForbidden
		case apiErr.Status >= 500:
			return auditErrBackendError
		default:
			return auditErrRejected
		}
	default:
		return auditErrInternal
	}
}
