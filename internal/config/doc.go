// Package config loads the pmctl configuration.
//
// Values are layered: defaults, then an optional YAML file, then PM_*
// environment variables. The result is validated by the caller through
// [pmAuth.Config.Validate] when the client is built.
//
// # What this package must NOT do
//
//   - Open session storage or contact the backend.
//   - Read secrets from anywhere but the file and environment it is given.
package config
