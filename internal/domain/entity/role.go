package entity

// Role is fixed when the account is created.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDoctor Role = "doctor"
	RoleNurse  Role = "nurse"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleNurse:
		return true
	}
	return false
}

// IsCaregiver reports whether r is a doctor or a nurse.
func (r Role) IsCaregiver() bool {
	return r == RoleDoctor || r == RoleNurse
}

// Counterpart returns the caregiver role that receives records authored by r.
func (r Role) Counterpart() Role {
	switch r {
	case RoleDoctor:
		return RoleNurse
	case RoleNurse:
		return RoleDoctor
	}
	return ""
}

func (r Role) String() string {
	return string(r)
}
