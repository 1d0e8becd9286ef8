package pmAuth

import internalmetrics "github.com/MrEthical07/pmAuth/internal/metrics"

// MetricID identifies one client counter.
type MetricID = internalmetrics.MetricID

const (
	MetricLoginSuccess        = internalmetrics.MetricLoginSuccess
	MetricLoginFailure        = internalmetrics.MetricLoginFailure
	MetricLogout              = internalmetrics.MetricLogout
	MetricSessionRestored     = internalmetrics.MetricSessionRestored
	MetricSessionInvalidated  = internalmetrics.MetricSessionInvalidated
	MetricInviteCreated       = internalmetrics.MetricInviteCreated
	MetricInviteFailure       = internalmetrics.MetricInviteFailure
	MetricInviteValidated     = internalmetrics.MetricInviteValidated
	MetricInviteInvalid       = internalmetrics.MetricInviteInvalid
	MetricRegistrationSuccess = internalmetrics.MetricRegistrationSuccess
	MetricRegistrationFailure = internalmetrics.MetricRegistrationFailure
	MetricUserRoleChanged     = internalmetrics.MetricUserRoleChanged
	MetricUserStatusChanged   = internalmetrics.MetricUserStatusChanged
	MetricUsersListed         = internalmetrics.MetricUsersListed
	MetricAccessDenied        = internalmetrics.MetricAccessDenied
	MetricRequestFailure      = internalmetrics.MetricRequestFailure
	// MetricRequestLatency counts observed round trips; its histogram buckets
	// are in MetricsSnapshot.Histograms.
	MetricRequestLatency = internalmetrics.MetricRequestLatency
)

// Metrics is the lock-free counter set a Client records into.
type Metrics = internalmetrics.Metrics

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot = internalmetrics.Snapshot

// NewMetrics describes the newmetrics operation and its observable behavior.
//
// NewMetrics returns a collector that records nothing unless cfg.Enabled is set.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return internalmetrics.New(internalmetrics.Config{
		Enabled:                 cfg.Enabled,
		EnableLatencyHistograms: cfg.EnableLatencyHistograms,
	})
}
