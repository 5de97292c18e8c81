package entity

// Role is the tag that decides which profile a user owns.
// DONOR users own a Donor, HOSPITAL users own a Hospital, ADMIN users own none.
type Role string

const (
	RoleDonor    Role = "DONOR"
	RoleHospital Role = "HOSPITAL"
	RoleAdmin    Role = "ADMIN"
)

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleDonor, RoleHospital, RoleAdmin:
		return true
	}
	return false
}

// CanSelfRegister reports whether the role is available on the public registration endpoint.
// Admin accounts are seeded only.
func (r Role) CanSelfRegister() bool {
	return r == RoleDonor || r == RoleHospital
}

func (r Role) String() string {
	return string(r)
}
