package domain

import "strings"

// Role is the normalised marketplace role of a user.
type Role int

// Available roles.
const (
	// RoleUnknown is any backend value missing from the alias table.
	RoleUnknown Role = iota
	// RoleVendor offers services.
	RoleVendor
	// RoleContractor hires services.
	RoleContractor
)

// roleAliases maps every backend spelling to its normalised role.
// The backend stores localised values; older accounts carry English ones.
var roleAliases = map[string]Role{
	"vendor":      RoleVendor,
	"vendedor":    RoleVendor,
	"contractor":  RoleContractor,
	"contratador": RoleContractor,
	"client":      RoleContractor,
	"cliente":     RoleContractor,
}

// ParseRole normalises a raw backend role string.
func ParseRole(raw string) Role {
	if r, ok := roleAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return r
	}
	return RoleUnknown
}

// WireValue returns the value the backend expects on registration.
func (r Role) WireValue() string {
	switch r {
	case RoleVendor:
		return "vendedor"
	case RoleContractor:
		return "contratador"
	default:
		return ""
	}
}

// String returns the string representation.
func (r Role) String() string {
	switch r {
	case RoleVendor:
		return "vendor"
	case RoleContractor:
		return "contractor"
	default:
		return "unknown"
	}
}
