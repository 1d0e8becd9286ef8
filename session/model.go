package session

import "github.com/MrEthical07/pmAuth/permission"

// User is the authenticated identity as last fetched from the backend.
type User struct {
	ID     string                   `json:"id"`
	Name   string                   `json:"name"`
	Email  string                   `json:"email"`
	Role   permission.Role          `json:"role"`
	Status permission.AccountStatus `json:"status"`
}

// Session is a read-only snapshot of the store.
//
// Token and User are both set or both empty. While Loading is true no gating
// decision should be made.
type Session struct {
	Token   string
	User    *User
	Loading bool
}

// Authenticated reports whether the snapshot carries a complete session.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// Role returns the user's role, or "" when there is no user.
func (s Session) Role() permission.Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}
