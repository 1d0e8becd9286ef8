// Package router maps logical client paths to views and evaluates the access
// guard along each route's gate chain.
//
// The default table mirrors the client: public login and invite registration
// entries, an authenticated project dashboard, and an admin-only user
// management view nested inside the authenticated gate. "/" forwards signed-in
// users to the dashboard and every unknown path redirects to login.
//
// Navigation results are recomputed on every call; nothing is cached.
package router
