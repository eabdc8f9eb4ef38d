package entity

import (
	"errors"

	"github.com/google/uuid"
)

// ErrProfileMismatch is returned when a user's role has no matching loaded profile.
var ErrProfileMismatch = errors.New("account role does not match its profile")

// Account is one of AdminAccount, DoctorAccount or NurseAccount.
type Account interface {
	UserID() uuid.UUID
	Role() Role
	Identity() *User
	isAccount()
}

type AdminAccount struct {
	User    *User
	Profile *AdminProfile
}

type DoctorAccount struct {
	User    *User
	Profile *DoctorProfile
}

type NurseAccount struct {
	User    *User
	Profile *NurseProfile
}

func (a AdminAccount) UserID() uuid.UUID { return a.User.ID }
func (a AdminAccount) Role() Role        { return RoleAdmin }
func (a AdminAccount) Identity() *User   { return a.User }
func (AdminAccount) isAccount()          {}

func (a DoctorAccount) UserID() uuid.UUID { return a.User.ID }
func (a DoctorAccount) Role() Role        { return RoleDoctor }
func (a DoctorAccount) Identity() *User   { return a.User }
func (DoctorAccount) isAccount()          {}

func (a NurseAccount) UserID() uuid.UUID { return a.User.ID }
func (a NurseAccount) Role() Role        { return RoleNurse }
func (a NurseAccount) Identity() *User   { return a.User }
func (NurseAccount) isAccount()          {}

// Account resolves the user into its role-specific account. The profile matching
// the role must be preloaded.
func (u *User) Account() (Account, error) {
	switch u.Role {
	case RoleAdmin:
		if u.AdminProfile == nil || u.DoctorProfile != nil || u.NurseProfile != nil {
			return nil, ErrProfileMismatch
		}
		return AdminAccount{User: u, Profile: u.AdminProfile}, nil
	case RoleDoctor:
		if u.DoctorProfile == nil || u.AdminProfile != nil || u.NurseProfile != nil {
			return nil, ErrProfileMismatch
		}
		return DoctorAccount{User: u, Profile: u.DoctorProfile}, nil
	case RoleNurse:
		if u.NurseProfile == nil || u.AdminProfile != nil || u.DoctorProfile != nil {
			return nil, ErrProfileMismatch
		}
		return NurseAccount{User: u, Profile: u.NurseProfile}, nil
	}
	return nil, ErrProfileMismatch
}

// NewAccount builds a fresh account for u with an empty profile of u's role.
func NewAccount(u *User, specialization string) (Account, error) {
	switch u.Role {
	case RoleAdmin:
		u.AdminProfile = &AdminProfile{}
	case RoleDoctor:
		u.DoctorProfile = &DoctorProfile{Specialization: specialization}
	case RoleNurse:
		u.NurseProfile = &NurseProfile{}
	default:
		return nil, ErrProfileMismatch
	}
	return u.Account()
}
