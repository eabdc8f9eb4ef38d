package entity

import "github.com/google/uuid"

// CareRecord is a clinical record authored by one caregiver about one patient and
// addressed to a snapshot of caregivers of the counterpart role. An unfiltered
// record names no recipients and is shared with whoever currently treats the patient.
type CareRecord interface {
	GetID() uuid.UUID
	AuthorID() uuid.UUID
	AuthorRole() Role
	GetPatientID() uuid.UUID
	RecipientIDs() []uuid.UUID
	IsUnfiltered() bool
	MarkUnfiltered()
}

func nurseIDs(nurses []NurseProfile) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(nurses))
	for _, n := range nurses {
		ids = append(ids, n.UserID)
	}
	return ids
}

func doctorIDs(doctors []DoctorProfile) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(doctors))
	for _, d := range doctors {
		ids = append(ids, d.UserID)
	}
	return ids
}

// IsRecipient reports whether userID is in the record's recipient set.
func IsRecipient(record CareRecord, userID uuid.UUID) bool {
	for _, id := range record.RecipientIDs() {
		if id == userID {
			return true
		}
	}
	return false
}
