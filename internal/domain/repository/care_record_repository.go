package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CareRecordRepository stores one kind of care record (doctor report, nurse report,
// ray or medicine) together with its recipient snapshot.
type CareRecordRepository[T any] interface {
	// Create writes the record and one recipient row per id.
	Create(db *gorm.DB, record *T, recipientIDs []uuid.UUID) error
	FindByID(db *gorm.DB, id uuid.UUID) (*T, error)
	// FindByAuthor lists the author's records, optionally for one patient.
	FindByAuthor(db *gorm.DB, authorID uuid.UUID, patientID *uuid.UUID) ([]T, error)
	// FindReceived lists records addressed to userID, plus unfiltered records of
	// patients userID currently treats.
	FindReceived(db *gorm.DB, userID uuid.UUID, patientID *uuid.UUID) ([]T, error)
	FindByPatient(db *gorm.DB, patientID uuid.UUID) ([]T, error)
	Update(db *gorm.DB, record *T) error
	Delete(db *gorm.DB, id uuid.UUID) (bool, error)
	DeleteByAuthor(db *gorm.DB, authorID uuid.UUID) error
	DeleteByPatient(db *gorm.DB, patientID uuid.UUID) error
	RemoveRecipient(db *gorm.DB, userID uuid.UUID) error
}
