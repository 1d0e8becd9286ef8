package internaldefs

import (
	pmAuth "github.com/MrEthical07/pmAuth"
)

// Def names one exported series.
type Def struct {
	ID   pmAuth.MetricID
	Name string
	Help string
}

// AuditDropped is the series for events lost to a full audit buffer.
var AuditDropped = Def{Name: "pmauth_audit_dropped_total", Help: "Audit events dropped on a full dispatcher buffer."}

// CounterDefs lists every counter in export order.
var CounterDefs = []Def{
	{ID: pmAuth.MetricLoginSuccess, Name: "pmauth_login_success_total", Help: "Successful logins."},
	{ID: pmAuth.MetricLoginFailure, Name: "pmauth_login_failure_total", Help: "Failed or rejected logins."},
	{ID: pmAuth.MetricLogout, Name: "pmauth_logout_total", Help: "Logouts that cleared a session."},
	{ID: pmAuth.MetricSessionRestored, Name: "pmauth_session_restored_total", Help: "Sessions restored from storage."},
	{ID: pmAuth.MetricSessionInvalidated, Name: "pmauth_session_invalidated_total", Help: "Sessions cleared after the backend rejected the token."},
	{ID: pmAuth.MetricInviteCreated, Name: "pmauth_invite_created_total", Help: "Invite links issued."},
	{ID: pmAuth.MetricInviteFailure, Name: "pmauth_invite_failure_total", Help: "Invite creations that failed."},
	{ID: pmAuth.MetricInviteValidated, Name: "pmauth_invite_validated_total", Help: "Invite tokens validated as redeemable."},
	{ID: pmAuth.MetricInviteInvalid, Name: "pmauth_invite_invalid_total", Help: "Invite tokens found invalid, expired or consumed."},
	{ID: pmAuth.MetricRegistrationSuccess, Name: "pmauth_registration_success_total", Help: "Accounts registered from an invite."},
	{ID: pmAuth.MetricRegistrationFailure, Name: "pmauth_registration_failure_total", Help: "Registrations rejected by the backend."},
	{ID: pmAuth.MetricUserRoleChanged, Name: "pmauth_user_role_changed_total", Help: "User role changes."},
	{ID: pmAuth.MetricUserStatusChanged, Name: "pmauth_user_status_changed_total", Help: "User status changes."},
	{ID: pmAuth.MetricUsersListed, Name: "pmauth_users_listed_total", Help: "User list fetches."},
	{ID: pmAuth.MetricAccessDenied, Name: "pmauth_access_denied_total", Help: "Operations refused by a client-side gate."},
	{ID: pmAuth.MetricRequestFailure, Name: "pmauth_request_failure_total", Help: "Backend calls that failed in transport or with a 5xx."},
}

// HistogramDefs lists every histogram in export order.
var HistogramDefs = []Def{
	{ID: pmAuth.MetricRequestLatency, Name: "pmauth_request_latency_seconds", Help: "Backend round trip latency."},
}

// BucketCount is the number of histogram buckets, the last one unbounded.
const BucketCount = 8

// HistogramBounds are the Prometheus le labels of the buckets.
var HistogramBounds = [BucketCount]string{"0.005", "0.01", "0.025", "0.05", "0.1", "0.25", "0.5", "+Inf"}

// HistogramBoundSuffix are the buckets as instrument name suffixes.
var HistogramBoundSuffix = [BucketCount]string{"0_005", "0_01", "0_025", "0_05", "0_1", "0_25", "0_5", "inf"}

// CumulativeBuckets converts raw per-bucket counts into cumulative counts.
// Missing buckets count as zero; extra ones are ignored.
func CumulativeBuckets(raw []uint64) [BucketCount]uint64 {
	var out [BucketCount]uint64
	var running uint64
	for i := range out {
		if i < len(raw) {
			running += raw[i]
		}
		out[i] = running
	}
	return out
}
