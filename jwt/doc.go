// Package jwt inspects bearer tokens that happen to be JWTs without verifying them.
//
// The client treats session tokens as opaque credentials. When a token is
// JWT-shaped its expiry is read so a stale persisted session can be discarded at
// startup instead of failing on the first request. Signatures are never checked
// here; the backend remains the only authority on token validity.
package jwt
