// Package guard decides whether the current session may reach a view.
//
// # Decision order
//
// [Decide] evaluates, short-circuiting:
//
//  1. session still loading       -> [Pending] (no navigation)
//  2. no token or no user         -> [RedirectLogin], replacing history
//  3. role requirement not met    -> [Denied] (the caller stays put)
//  4. otherwise                   -> [Render]
//
// The decision is a pure function of (loading, token, user role, requirement)
// and is recomputed for every navigation; nothing is cached.
//
// # Nesting
//
// Role-restricted views sit behind the plain authentication gate. [Chain]
// evaluates gates outermost first and stops at the first gate that does not
// render.
//
// # What this package must NOT do
//
//   - Perform I/O or mutate the session.
//   - Rank roles; requirements are explicit membership sets.
package guard
