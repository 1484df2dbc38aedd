// Package entity contains the core business objects of the project.
package entity

import (
	"github.com/pkg/errors"
)

// Role is the closed set of account roles. Callers branch on it with an
// exhaustive switch; a zero Role is never valid.
type Role int

const (
	roleUnknown Role = iota
	// RoleStudent places orders and reads its own orders and notifications.
	RoleStudent
	// RoleAdmin sees every order and may advance any of them.
	RoleAdmin
	// RoleCanteenStaff sees the active queue and advances orders.
	RoleCanteenStaff
)

// ErrUnknownRole is returned when a stored or requested role name is not recognised.
var ErrUnknownRole = errors.New("unknown role")

// String returns the stored name of the Role.
func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "student"
	case RoleAdmin:
		return "admin"
	case RoleCanteenStaff:
		return "canteen_staff"
	case roleUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// IsValid checks if the Role is one of the defined roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleAdmin, RoleCanteenStaff:
		return true
	case roleUnknown:
		return false
	default:
		return false
	}
}

// CanManageOrders reports whether the role may advance order status.
func (r Role) CanManageOrders() bool {
	switch r {
	case RoleAdmin, RoleCanteenStaff:
		return true
	case RoleStudent, roleUnknown:
		return false
	default:
		return false
	}
}

// ParseRole maps a stored role name onto a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "student":
		return RoleStudent, nil
	case "admin":
		return RoleAdmin, nil
	case "canteen_staff":
		return RoleCanteenStaff, nil
	default:
		return roleUnknown, errors.Wrapf(ErrUnknownRole, "%q", s)
	}
}

// MarshalText encodes the role by name.
func (r Role) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, errors.WithStack(ErrUnknownRole)
	}

	return []byte(r.String()), nil
}

// UnmarshalText decodes a role name.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed

	return nil
}
