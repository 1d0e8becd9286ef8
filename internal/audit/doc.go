// Package audit implements async event dispatching for session and onboarding
// operations.
//
// # Components
//
//   - [Sink]: interface for event consumers (channel, JSON writer, no-op).
//   - [Dispatcher]: buffered async relay with drop-if-full / block-if-full semantics.
//   - [Event]: structured audit record with timestamp, type, user, request id, metadata.
//
// # Architecture boundaries
//
// This package owns event buffering and sink delivery. It does NOT decide which
// events to emit; that belongs to the Client.
//
// # What this package must NOT do
//
//   - Filter or suppress events based on business logic.
//   - Import pmAuth or any sibling internal package.
//   - Carry credentials. Events never include tokens or passwords.
package audit
