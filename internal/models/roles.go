package models

// Role identifies which dashboard a user may enter.
type Role string

const (
	RoleGuest        Role = "Guest"
	RoleHotelManager Role = "HotelManager"
	RoleAdmin        Role = "Admin"
)

// Roles lists every role the API issues.
var Roles = []Role{RoleGuest, RoleHotelManager, RoleAdmin}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
