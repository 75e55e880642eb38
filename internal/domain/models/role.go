package models

import (
	"encoding/json"
	"fmt"
)

// Role is either the administrator role or a handler bound to a single barn.
// The zero Role is invalid and is denied by every authorization check.
type Role struct {
	admin bool
	barn  Barn
}

// AdminRole returns the unrestricted administrator role.
func AdminRole() Role {
	return Role{admin: true}
}

// HandlerRole returns a role restricted to the given barn.
func HandlerRole(barn Barn) Role {
	return Role{barn: barn}
}

// IsAdmin reports whether the role is the administrator role.
func (r Role) IsAdmin() bool {
	return r.admin
}

// HandlerBarn returns the barn a handler role is bound to. The second return
// value is false for admin and invalid roles.
func (r Role) HandlerBarn() (Barn, bool) {
	if r.admin || !r.barn.Valid() {
		return "", false
	}
	return r.barn, true
}

// Valid reports whether the role is admin or a handler of a known barn.
func (r Role) Valid() bool {
	return r.admin || r.barn.Valid()
}

// ParseRole converts the wire role strings ("admin", "barat", "timur") into a
// Role. Anything else yields the invalid zero Role so that downstream checks
// fail closed instead of guessing.
func ParseRole(s string) Role {
	if s == "admin" {
		return AdminRole()
	}
	if barn, err := ParseBarn(s); err == nil {
		return HandlerRole(barn)
	}
	return Role{}
}

// String renders the wire representation of the role.
func (r Role) String() string {
	if r.admin {
		return "admin"
	}
	if r.barn.Valid() {
		return string(r.barn)
	}
	return "invalid"
}

// MarshalJSON encodes the role as its wire string.
func (r Role) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid role")
	}
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes the wire role string, tolerating unknown values.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decode role: %w", err)
	}
	*r = ParseRole(s)
	return nil
}
