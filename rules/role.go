package rules

import (
	"fmt"
	"strings"
)

// Role is the caller's privilege level. Values are ordered so that
// superadmin ⊇ admin ⊇ client.
type Role int

const (
	RoleNone Role = iota
	RoleClient
	RoleAdmin
	RoleSuperAdmin
)

var roleNames = map[Role]string{
	RoleNone:       "",
	RoleClient:     "client",
	RoleAdmin:      "admin",
	RoleSuperAdmin: "superadmin",
}

// ParseRole maps a token role claim to a Role. Unknown names yield RoleNone
// and an error.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "client":
		return RoleClient, nil
	case "admin":
		return RoleAdmin, nil
	case "superadmin":
		return RoleSuperAdmin, nil
	}
	return RoleNone, fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string { return roleNames[r] }

// AtLeast reports whether r carries every privilege of min.
func (r Role) AtLeast(min Role) bool { return r >= min }

// In is a membership test, for rules that name a role set rather than a floor.
func (r Role) In(set ...Role) bool {
	for _, s := range set {
		if r == s {
			return true
		}
	}
	return false
}

func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Role) UnmarshalText(b []byte) error {
	v, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
