package domain

import "strings"

// Role is an organization membership role.
type Role string

// RoleOwner and related constants enumerate membership roles.
const (
	RoleOwner       Role = "OWNER"
	RoleAdmin       Role = "ADMIN"
	RoleBase        Role = "BASE"
	RoleSelfService Role = "SELF_SERVICE"
)

// ParseRole normalizes a role name.
func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(raw)))
	switch role {
	case RoleOwner, RoleAdmin, RoleBase, RoleSelfService:
		return role, nil
	default:
		return "", ErrInvalidRole
	}
}

// ParseRoles normalizes a role list, skipping blanks and duplicates.
func ParseRoles(raw []string) ([]Role, error) {
	out := make([]Role, 0, len(raw))
	for _, item := range raw {
		if strings.TrimSpace(item) == "" {
			continue
		}
		role, err := ParseRole(item)
		if err != nil {
			return nil, err
		}
		dup := false
		for _, existing := range out {
			if existing == role {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, role)
		}
	}
	return out, nil
}
