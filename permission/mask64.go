package permission

import "strings"

// Mask64 is a 64-bit role mask. Only the low bits assigned in roleBits are used.
type Mask64 uint64

func (m *Mask64) Has(bit int) bool {
	if bit < 0 || bit >= 64 {
		return false
	}
	return (*m & (1 << bit)) != 0
}

func (m *Mask64) Set(bit int) {
	if bit < 0 || bit >= 64 {
		return
	}
	*m |= (1 << bit)
}

func (m *Mask64) Clear(bit int) {
	if bit < 0 || bit >= 64 {
		return
	}
	*m &^= (1 << bit)
}

func (m *Mask64) Raw() uint64 {
	return uint64(*m)
}

// RoleSet is an immutable set of roles backed by a Mask64.
//
// The zero value is the empty set. Invalid roles are ignored on construction.
type RoleSet struct {
	mask Mask64
}

// NewRoleSet builds a set from roles, skipping values that are not enumerated roles.
func NewRoleSet(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		if bit, ok := roleBits[r]; ok {
			s.mask.Set(bit)
		}
	}
	return s
}

// Has reports whether r is a member of the set.
func (s RoleSet) Has(r Role) bool {
	bit, ok := roleBits[r]
	if !ok {
		return false
	}
	return s.mask.Has(bit)
}

// Empty reports whether no role is a member.
func (s RoleSet) Empty() bool {
	return s.mask.Raw() == 0
}

// Roles returns the members in AllRoles order.
func (s RoleSet) Roles() []Role {
	out := make([]Role, 0, len(roleBits))
	for _, r := range AllRoles() {
		if s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

func (s RoleSet) String() string {
	roles := s.Roles()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return "{" + strings.Join(names, ",") + "}"
}
