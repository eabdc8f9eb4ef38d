// Package policy holds the access rules shared by every handler and usecase.
// The functions are pure: callers load the principal, the record and the
// patient (with its caregivers) and ask whether an action is allowed.
package policy

import (
	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
)

// Principal is the authenticated caller as carried by the access token.
type Principal struct {
	UserID      uuid.UUID
	Role        entity.Role
	IsSuperUser bool
}

func IsAuthenticated(p *Principal) bool {
	return p != nil && p.UserID != uuid.Nil
}

// HasRole reports whether p holds one of roles.
func HasRole(p *Principal, roles ...entity.Role) bool {
	if !IsAuthenticated(p) {
		return false
	}
	for _, role := range roles {
		if p.Role == role {
			return true
		}
	}
	return false
}

func IsSuperUser(p *Principal) bool {
	return IsAuthenticated(p) && p.IsSuperUser
}

func ownsPatient(p *Principal, patient *entity.Patient) bool {
	return patient != nil && p.Role == entity.RoleAdmin && patient.CreatedByID == p.UserID
}

// CanManageUser allows superusers and the admin that created the account.
func CanManageUser(p *Principal, user *entity.User) bool {
	if !IsAuthenticated(p) || user == nil {
		return false
	}
	if p.IsSuperUser {
		return true
	}
	return p.Role == entity.RoleAdmin && user.CreatedByID != nil && *user.CreatedByID == p.UserID
}

// CanManagePatient allows the owning admin and superusers.
func CanManagePatient(p *Principal, patient *entity.Patient) bool {
	if !IsAuthenticated(p) || patient == nil {
		return false
	}
	return p.IsSuperUser || ownsPatient(p, patient)
}

// CanViewPatient additionally allows caregivers currently assigned to the patient.
// The patient's doctors and nurses must be loaded.
func CanViewPatient(p *Principal, patient *entity.Patient) bool {
	if CanManagePatient(p, patient) {
		return true
	}
	return IsAuthenticated(p) && patient != nil && patient.HasCaregiver(p.UserID, p.Role)
}

// CanAuthorRecord allows a caregiver to write records only for patients they treat.
func CanAuthorRecord(p *Principal, role entity.Role, patient *entity.Patient) bool {
	if !HasRole(p, role) || patient == nil {
		return false
	}
	return patient.HasCaregiver(p.UserID, role)
}

func isAuthor(p *Principal, record entity.CareRecord) bool {
	return p.Role == record.AuthorRole() && record.AuthorID() == p.UserID
}

// CanViewRecord decides read access to a report, ray or medicine. Authors of the
// same role never see each other's records. A counterpart caregiver sees the record
// when listed as a recipient, or when the record has no recipients and the caregiver
// currently treats the patient.
func CanViewRecord(p *Principal, record entity.CareRecord, patient *entity.Patient) bool {
	if !IsAuthenticated(p) || record == nil {
		return false
	}
	if p.IsSuperUser || isAuthor(p, record) || ownsPatient(p, patient) {
		return true
	}
	if p.Role != record.AuthorRole().Counterpart() {
		return false
	}
	if entity.IsRecipient(record, p.UserID) {
		return true
	}
	return record.IsUnfiltered() && patient != nil && patient.HasCaregiver(p.UserID, p.Role)
}

// CanModifyRecord allows the author, the owning admin and superusers.
func CanModifyRecord(p *Principal, record entity.CareRecord, patient *entity.Patient) bool {
	if !IsAuthenticated(p) || record == nil {
		return false
	}
	return p.IsSuperUser || isAuthor(p, record) || ownsPatient(p, patient)
}
