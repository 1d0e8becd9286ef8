// Package cli implements the pmctl command tree.
//
// Every command loads configuration through internal/config, builds one
// [pmAuth.Client], restores the persisted session and runs a single
// operation. Output goes through [OutputFormatter] so --format json emits one
// envelope per invocation.
package cli
