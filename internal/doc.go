// Package internal holds the pieces of pmAuth that are not part of its public
// API.
//
// # Sub-packages
//
//   - audit: async event dispatch (Dispatcher + Sink implementations)
//   - cli: the pmctl command tree
//   - config: layered YAML and environment configuration for pmctl
//   - flows: one function per backend operation, over explicit deps
//   - metrics: lock-free counters and the request latency histogram
//   - testbackend: an in-process fake of the backend for tests
//   - transport: the JSON-over-HTTP client every backend call goes through
//
// # What this package must NOT do
//
//   - Export types that appear in the public pmAuth API.
//   - Be imported by any package outside the pmAuth module.
package internal
