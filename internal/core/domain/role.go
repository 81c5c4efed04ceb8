package domain

import "errors"

// Role identifies which marketplace surface an account belongs to and which
// backend endpoints apply to it. The zero value means "no role".
type Role string

const (
	RoleUser    Role = "user"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

var ErrInvalidRole = errors.New("invalid role")

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleTrainer, RoleAdmin:
		return true
	}
	return false
}

// ParseRole converts a raw string into a Role. The second return value is
// false for anything that is not a known role, including the empty string.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}
