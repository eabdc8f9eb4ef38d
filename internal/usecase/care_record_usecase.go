package usecase

import (
	"context"

	"hospital-management-api/internal/converter"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/policy"
	"hospital-management-api/internal/domain/repository"
	"hospital-management-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateOptions selects the fan-out variant of a record creation.
type CreateOptions struct {
	// PatientID is set on patient-scoped routes and must match the body.
	PatientID *uuid.UUID
	// AllRecipients addresses the record to every caregiver of the counterpart
	// role currently treating the patient.
	AllRecipients bool
}

// RecordScope narrows which records a single-record call may reach.
type RecordScope struct {
	PatientID *uuid.UUID
	// Received restricts the call to records addressed to the caller.
	Received bool
}

// RecordUsecase is the behaviour shared by reports, rays and medicines.
type RecordUsecase[Req any, Upd any, R any] interface {
	Create(ctx context.Context, actor *policy.Principal, req *Req, opts CreateOptions) (*R, error)
	ListMine(ctx context.Context, actor *policy.Principal, patientID *uuid.UUID) ([]R, error)
	ListReceived(ctx context.Context, actor *policy.Principal, patientID *uuid.UUID) ([]R, error)
	ListForPatient(ctx context.Context, actor *policy.Principal, patientID uuid.UUID) ([]R, error)
	Get(ctx context.Context, actor *policy.Principal, id uuid.UUID, scope RecordScope) (*R, error)
	Update(ctx context.Context, actor *policy.Principal, id uuid.UUID, scope RecordScope, req *Upd) (*R, error)
	Delete(ctx context.Context, actor *policy.Principal, id uuid.UUID, scope RecordScope) error
}

// recordKind plugs one record type into recordUsecase.
type recordKind[T any, Req any, Upd any, R any] struct {
	name       string
	role       entity.Role
	patientOf  func(req *Req) uuid.UUID
	recipients func(req *Req) []uuid.UUID
	build      func(tx *gorm.DB, authorID uuid.UUID, patient *entity.Patient, req *Req) (*T, error)
	apply      func(tx *gorm.DB, record *T, req *Upd) error
	toResponse func(record *T) *R
}

type recordUsecase[T any, PT interface {
	*T
	entity.CareRecord
}, Req any, Upd any, R any] struct {
	db           *gorm.DB
	log          *logrus.Logger
	repo         repository.CareRecordRepository[T]
	patientRepo  repository.PatientRepository
	profileRepo  repository.ProfileRepository
	auditService service.AuditService
	kind         recordKind[T, Req, Upd, R]
}

func (u *recordUsecase[T, PT, Req, Upd, R]) recipientField() string {
	return u.kind.role.Counterpart().String() + "s"
}

// Create writes the record and its recipient snapshot in one transaction. The
// author must currently treat the patient.
func (u *recordUsecase[T, PT, Req, Upd, R]) Create(ctx context.Context, actor *policy.Principal, req *Req, opts CreateOptions) (*R, error) {
	patientID := u.kind.patientOf(req)
	if opts.PatientID != nil && *opts.PatientID != patientID {
		return nil, ErrPatientMismatch
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, invalidField("patient", "patient not found")
	}
	if !policy.CanAuthorRecord(actor, u.kind.role, patient) {
		return nil, ErrNotAssignedToPatient
	}

	counterpart := u.kind.role.Counterpart()
	var recipientIDs []uuid.UUID
	if opts.AllRecipients {
		recipientIDs = patient.CaregiverIDs(counterpart)
	} else {
		recipientIDs = dedupeIDs(u.kind.recipients(req))
		if err := requireProfiles(tx, u.profileRepo, counterpart, u.recipientField(), recipientIDs); err != nil {
			return nil, err
		}
		if err := requireCaregivers(patient, counterpart, u.recipientField(), recipientIDs); err != nil {
			return nil, err
		}
	}

	record, err := u.kind.build(tx, actor.UserID, patient, req)
	if err != nil {
		return nil, err
	}
	if !opts.AllRecipients && len(recipientIDs) == 0 {
		PT(record).MarkUnfiltered()
	}
	if err := u.repo.Create(tx, record, recipientIDs); err != nil {
		u.log.Warnf("Failed to create %s: %+v", u.kind.name, err)
		return nil, err
	}

	created, err := u.repo.FindByID(tx, PT(record).GetID())
	if err != nil {
		u.log.Warnf("Failed to reload %s: %+v", u.kind.name, err)
		return nil, err
	}
	resp := u.kind.toResponse(created)

	if err := u.auditService.LogCreate(tx, &actor.UserID, entity.AuditActionRecordCreate, u.kind.name, PT(created).GetID().String(), resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return resp, nil
}

func (u *recordUsecase[T, PT, Req, Upd, R]) ListMine(ctx context.Context, actor *policy.Principal, patientID *uuid.UUID) ([]R, error) {
	records, err := u.repo.FindByAuthor(u.db.WithContext(ctx), actor.UserID, patientID)
	if err != nil {
		u.log.Warnf("Failed to list own %s records: %+v", u.kind.name, err)
		return nil, err
	}
	return converter.Convert(records, u.kind.toResponse), nil
}

// ListReceived lists records addressed to the caller, including unfiltered
// records of patients the caller treats.
func (u *recordUsecase[T, PT, Req, Upd, R]) ListReceived(ctx context.Context, actor *policy.Principal, patientID *uuid.UUID) ([]R, error) {
	if actor.Role != u.kind.role.Counterpart() {
		return nil, ErrForbidden
	}
	records, err := u.repo.FindReceived(u.db.WithContext(ctx), actor.UserID, patientID)
	if err != nil {
		u.log.Warnf("Failed to list received %s records: %+v", u.kind.name, err)
		return nil, err
	}
	return converter.Convert(records, u.kind.toResponse), nil
}

// ListForPatient returns every record about the patient to its admin and the
// visible subset to anyone else.
func (u *recordUsecase[T, PT, Req, Upd, R]) ListForPatient(ctx context.Context, actor *policy.Principal, patientID uuid.UUID) ([]R, error) {
	db := u.db.WithContext(ctx)
	patient, err := u.patientRepo.FindByID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	records, err := u.repo.FindByPatient(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to list %s records of patient: %+v", u.kind.name, err)
		return nil, err
	}
	if policy.CanManagePatient(actor, patient) {
		return converter.Convert(records, u.kind.toResponse), nil
	}

	visible := make([]T, 0, len(records))
	for i := range records {
		if policy.CanViewRecord(actor, PT(&records[i]), patient) {
			visible = append(visible, records[i])
		}
	}
	return converter.Convert(visible, u.kind.toResponse), nil
}

func (u *recordUsecase[T, PT, Req, Upd, R]) Get(ctx context.Context, actor *policy.Principal, id uuid.UUID, scope RecordScope) (*R, error) {
	record, _, err := u.findVisible(u.db.WithContext(ctx), actor, id, scope)
	if err != nil {
		return nil, err
	}
	return u.kind.toResponse(record), nil
}

func (u *recordUsecase[T, PT, Req, Upd, R]) Update(ctx context.Context, actor *policy.Principal, id uuid.UUID, scope RecordScope, req *Upd) (*R, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	record, err := u.findModifiable(tx, actor, id, scope)
	if err != nil {
		return nil, err
	}
	oldValue := u.kind.toResponse(record)

	if err := u.kind.apply(tx, record, req); err != nil {
		return nil, err
	}
	if err := u.repo.Update(tx, record); err != nil {
		u.log.Warnf("Failed to update %s: %+v", u.kind.name, err)
		return nil, err
	}

	newValue := u.kind.toResponse(record)
	if err := u.auditService.LogUpdate(tx, &actor.UserID, entity.AuditActionRecordUpdate, u.kind.name, id.String(), oldValue, newValue); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

func (u *recordUsecase[T, PT, Req, Upd, R]) Delete(ctx context.Context, actor *policy.Principal, id uuid.UUID, scope RecordScope) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	record, err := u.findModifiable(tx, actor, id, scope)
	if err != nil {
		return err
	}

	if _, err := u.repo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete %s: %+v", u.kind.name, err)
		return err
	}
	if err := u.auditService.LogDelete(tx, &actor.UserID, entity.AuditActionRecordDelete, u.kind.name, id.String(), u.kind.toResponse(record)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

// findVisible loads a record the caller may read. Missing and hidden records are
// both reported as ErrRecordNotFound.
func (u *recordUsecase[T, PT, Req, Upd, R]) findVisible(db *gorm.DB, actor *policy.Principal, id uuid.UUID, scope RecordScope) (*T, *entity.Patient, error) {
	record, err := u.repo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find %s by ID: %+v", u.kind.name, err)
		return nil, nil, err
	}
	if record == nil {
		return nil, nil, ErrRecordNotFound
	}
	rec := PT(record)
	if scope.PatientID != nil && rec.GetPatientID() != *scope.PatientID {
		return nil, nil, ErrRecordNotFound
	}
	if scope.Received && actor.Role != rec.AuthorRole().Counterpart() {
		return nil, nil, ErrRecordNotFound
	}

	patient, err := u.patientRepo.FindByID(db, rec.GetPatientID())
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, nil, err
	}
	if !policy.CanViewRecord(actor, rec, patient) {
		return nil, nil, ErrRecordNotFound
	}
	return record, patient, nil
}

func (u *recordUsecase[T, PT, Req, Upd, R]) findModifiable(db *gorm.DB, actor *policy.Principal, id uuid.UUID, scope RecordScope) (*T, error) {
	record, patient, err := u.findVisible(db, actor, id, scope)
	if err != nil {
		return nil, err
	}
	if !policy.CanModifyRecord(actor, PT(record), patient) {
		return nil, ErrForbidden
	}
	return record, nil
}
