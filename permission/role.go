package permission

import (
	"errors"
	"strings"
)

// ErrRoleInvalid is returned when a value is not one of the enumerated roles.
var ErrRoleInvalid = errors.New("invalid role")

// ErrStatusInvalid is returned when a value is not one of the enumerated account statuses.
var ErrStatusInvalid = errors.New("invalid account status")

// Role is a user role as issued by the backend.
type Role string

const (
	// RoleAdmin may manage users and issue invites.
	RoleAdmin Role = "ADMIN"
	// RoleManager is a regular authenticated role.
	RoleManager Role = "MANAGER"
	// RoleStaff is a regular authenticated role.
	RoleStaff Role = "STAFF"
)

// roleBits assigns a stable mask bit to every role.
var roleBits = map[Role]int{
	RoleAdmin:   0,
	RoleManager: 1,
	RoleStaff:   2,
}

// AllRoles returns the roles in the order the backend lists them.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleStaff}
}

// IsValid reports whether r is one of the enumerated roles.
func (r Role) IsValid() bool {
	_, ok := roleBits[r]
	return ok
}

func (r Role) String() string {
	return string(r)
}

// ParseRole describes the parserole operation and its observable behavior.
//
// ParseRole accepts the exact backend spelling as well as lower-case input from
// command lines. It returns ErrRoleInvalid for anything else.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", ErrRoleInvalid
	}
	return r, nil
}

// AccountStatus is the lifecycle state of a user account.
type AccountStatus string

const (
	// StatusActive accounts may sign in.
	StatusActive AccountStatus = "ACTIVE"
	// StatusInactive accounts were deactivated by an administrator.
	StatusInactive AccountStatus = "INACTIVE"
)

// IsValid reports whether s is one of the enumerated statuses.
func (s AccountStatus) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

func (s AccountStatus) String() string {
	return string(s)
}

// Toggled returns the opposite status. Unknown values toggle to ACTIVE.
func (s AccountStatus) Toggled() AccountStatus {
	if s == StatusActive {
		return StatusInactive
	}
	return StatusActive
}

// ParseStatus accepts ACTIVE or INACTIVE in any case.
func ParseStatus(s string) (AccountStatus, error) {
	st := AccountStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", ErrStatusInvalid
	}
	return st, nil
}
