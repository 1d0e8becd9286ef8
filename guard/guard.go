package guard

import (
	"errors"

	"github.com/MrEthical07/pmAuth/permission"
	"github.com/MrEthical07/pmAuth/session"
)

// LoginPath is the unauthenticated entry point guarded views redirect to.
const LoginPath = "/login"

var (
	// ErrSessionLoading is returned by Check while the session is being restored.
	ErrSessionLoading = errors.New("session loading")
	// ErrNotAuthenticated is returned by Check when there is no session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrAccessDenied is returned by Check when the role requirement is not met.
	ErrAccessDenied = errors.New("access denied")
)

// Decision is the outcome kind of a guard evaluation.
type Decision uint8

const (
	// Pending means the session is still loading; render a neutral state.
	Pending Decision = iota
	// RedirectLogin means there is no session; go to LoginPath.
	RedirectLogin
	// Denied means the user is authenticated but lacks a required role.
	Denied
	// Render means the target may be shown.
	Render
)

func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case RedirectLogin:
		return "redirect-to-login"
	case Denied:
		return "access-denied"
	case Render:
		return "render"
	default:
		return "unknown"
	}
}

// Outcome is a guard decision plus the navigation it implies.
type Outcome struct {
	Decision   Decision
	RedirectTo string
	// Replace is set on redirects so back-navigation cannot return to the guarded view.
	Replace bool
}

// Requirement is the optional role set a view demands.
//
// The zero value demands authentication only.
type Requirement struct {
	roles      permission.RoleSet
	restricted bool
}

// Authenticated admits any signed-in user.
func Authenticated() Requirement {
	return Requirement{}
}

// Roles admits signed-in users whose role is one of roles. Roles() with no
// arguments admits nobody.
func Roles(roles ...permission.Role) Requirement {
	return Requirement{roles: permission.NewRoleSet(roles...), restricted: true}
}

// Restricted reports whether the requirement carries a role set.
func (r Requirement) Restricted() bool {
	return r.restricted
}

// Admits reports whether a user holding role satisfies the requirement.
func (r Requirement) Admits(role permission.Role) bool {
	if !r.restricted {
		return true
	}
	return r.roles.Has(role)
}

func (r Requirement) String() string {
	if !r.restricted {
		return "authenticated"
	}
	return "roles" + r.roles.String()
}

// Decide describes the decide operation and its observable behavior.
//
// Decide is pure and must be called again on every navigation.
func Decide(sess session.Session, req Requirement) Outcome {
	if sess.Loading {
		return Outcome{Decision: Pending}
	}
	if sess.Token == "" || sess.User == nil {
		return Outcome{Decision: RedirectLogin, RedirectTo: LoginPath, Replace: true}
	}
	if !req.Admits(sess.User.Role) {
		return Outcome{Decision: Denied}
	}
	return Outcome{Decision: Render}
}

// Chain evaluates nested gates outermost first. With no gates it behaves like
// Decide with Authenticated.
func Chain(sess session.Session, gates ...Requirement) Outcome {
	if len(gates) == 0 {
		return Decide(sess, Authenticated())
	}
	for _, gate := range gates {
		if out := Decide(sess, gate); out.Decision != Render {
			return out
		}
	}
	return Outcome{Decision: Render}
}

// Check maps Decide onto errors for operations that are gated like views.
func Check(sess session.Session, req Requirement) error {
	switch Decide(sess, req).Decision {
	case Pending:
		return ErrSessionLoading
	case RedirectLogin:
		return ErrNotAuthenticated
	case Denied:
		return ErrAccessDenied
	case Render:
		return nil
	default:
		return ErrAccessDenied
	}
}
