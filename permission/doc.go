// Package permission defines the closed role and account-status vocabularies of
// the project-management backend, plus a fixed-width role mask used to express
// "any of these roles" requirements.
//
// # Roles
//
// ADMIN, MANAGER and STAFF are the only roles. ADMIN is the superset-capability
// role, but no numeric ordering is implied: a requirement names the roles it
// admits and membership is the only test.
//
// # Architecture boundaries
//
// This package is a pure in-memory vocabulary with no I/O. Role and status values
// are authoritative only as last received from the backend; nothing here derives
// or escalates them.
//
// # What this package must NOT do
//
//   - Access storage or the network.
//   - Import pmAuth, session, or guard.
//   - Compare roles by rank.
package permission
