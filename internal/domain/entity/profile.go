package entity

import "time"

// Role is the closed set of account roles. Anything read from storage that
// does not match a known role is normalized to RoleBuyer by ParseRole.
type Role string

const (
	RoleBuyer Role = "buyer"
	RoleBaker Role = "baker"
	RoleAdmin Role = "admin"
)

// ParseRole maps a stored role string onto the closed enum. Unknown or empty
// values fall back to RoleBuyer rather than failing.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleBaker:
		return RoleBaker
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleBuyer
	}
}

// Profile is the account record for an authenticated subject. Its ID equals
// the session subject id. Credentials are stored as bcrypt hashes.
type Profile struct {
	ID         string
	Email      string
	Password   string
	FullName   string
	Phone      string
	Role       Role
	IsVerified bool
	IsApproved bool // meaningful for bakers only
	IsBlocked  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
