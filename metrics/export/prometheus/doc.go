// Package prometheus renders pmAuth client metrics in the Prometheus text
// exposition format.
//
// Counter names are pmauth_*_total; the request latency histogram is
// pmauth_request_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry. Callers mount the Handler.
//   - Mutate client state.
package prometheus
