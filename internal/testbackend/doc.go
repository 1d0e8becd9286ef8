// Package testbackend is an in-process fake of the project-management backend
// for tests.
//
// It implements the authentication, invite and user-management routes over
// httptest, consumes invites exactly once, enforces the admin role on
// privileged routes, and counts requests per route so tests can assert that a
// flow made no network calls.
package testbackend
