package usecase

import (
	"context"

	"hospital-management-api/internal/converter"
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/policy"
	"hospital-management-api/internal/domain/repository"
	"hospital-management-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PatientUsecase interface {
	CreatePatient(ctx context.Context, actor *policy.Principal, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	ListPatients(ctx context.Context, actor *policy.Principal, search string) ([]dto.PatientResponse, error)
	GetPatient(ctx context.Context, actor *policy.Principal, id uuid.UUID) (*dto.PatientResponse, error)
	UpdatePatient(ctx context.Context, actor *policy.Principal, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, actor *policy.Principal, id uuid.UUID) error
	AddCaregivers(ctx context.Context, actor *policy.Principal, id uuid.UUID, req *dto.AddCaregiversRequest) (*dto.PatientResponse, error)
	RemoveCaregiver(ctx context.Context, actor *policy.Principal, id, userID uuid.UUID) error
	ListPatientsOfUser(ctx context.Context, actor *policy.Principal, userID uuid.UUID) ([]dto.PatientResponse, error)
	ListMyPatients(ctx context.Context, actor *policy.Principal, search string) ([]dto.PatientResponse, error)
	GetMyPatient(ctx context.Context, actor *policy.Principal, id uuid.UUID) (*dto.PatientResponse, error)
}

type patientUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	patientRepo    repository.PatientRepository
	userRepo       repository.UserRepository
	assignmentRepo repository.AssignmentRepository
	recordCleaners []RecordCleaner
	auditService   service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	userRepo repository.UserRepository,
	assignmentRepo repository.AssignmentRepository,
	recordCleaners []RecordCleaner,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:             db,
		log:            log,
		patientRepo:    patientRepo,
		userRepo:       userRepo,
		assignmentRepo: assignmentRepo,
		recordCleaners: recordCleaners,
		auditService:   auditService,
	}
}

// CreatePatient registers a patient owned by the calling admin, optionally with
// its first doctors and nurses.
func (u *patientUsecase) CreatePatient(ctx context.Context, actor *policy.Principal, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := checkUnique(tx, u.patientRepo.ExistsBy, uuid.Nil,
		uniqueField{column: "national_id", field: "national_id", value: req.NationalID},
		uniqueField{column: "phone", field: "phone", value: req.Phone},
	); err != nil {
		return nil, err
	}

	patient := &entity.Patient{
		Name:        req.Name,
		DiseaseType: req.DiseaseType,
		RoomNumber:  req.RoomNumber,
		Address:     req.Address,
		NationalID:  req.NationalID,
		Phone:       req.Phone,
		Gender:      req.Gender,
		Age:         req.Age,
		Status:      req.Status,
		CreatedByID: actor.UserID,
	}
	if err := u.patientRepo.Create(tx, patient); err != nil {
		if dup := duplicateKeyError(err, "national_id", "phone"); dup != nil {
			return nil, dup
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	if err := u.addCaregivers(tx, actor, patient.ID, req.Doctors, req.Nurses); err != nil {
		return nil, err
	}

	created, err := u.patientRepo.FindByID(tx, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to reload patient: %+v", err)
		return nil, err
	}
	resp := converter.PatientToResponse(created)

	if err := u.auditService.LogCreate(tx, &actor.UserID, entity.AuditActionPatientCreate, "patient", patient.ID.String(), resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return resp, nil
}

func (u *patientUsecase) addCaregivers(tx *gorm.DB, actor *policy.Principal, patientID uuid.UUID, doctors, nurses []uuid.UUID) error {
	doctorIDs := dedupeIDs(doctors)
	nurseIDs := dedupeIDs(nurses)

	if err := requireManagedStaff(tx, u.userRepo, actor, entity.RoleDoctor, "doctors", doctorIDs); err != nil {
		return err
	}
	if err := requireManagedStaff(tx, u.userRepo, actor, entity.RoleNurse, "nurses", nurseIDs); err != nil {
		return err
	}

	if err := u.assignmentRepo.AddPatientCaregivers(tx, patientID, entity.RoleDoctor, doctorIDs); err != nil {
		u.log.Warnf("Failed to assign doctors to patient: %+v", err)
		return err
	}
	if err := u.assignmentRepo.AddPatientCaregivers(tx, patientID, entity.RoleNurse, nurseIDs); err != nil {
		u.log.Warnf("Failed to assign nurses to patient: %+v", err)
		return err
	}
	return nil
}

func (u *patientUsecase) ListPatients(ctx context.Context, actor *policy.Principal, search string) ([]dto.PatientResponse, error) {
	filter := entity.PatientFilter{Search: search}
	if !policy.IsSuperUser(actor) {
		filter.CreatedByID = &actor.UserID
	}

	patients, err := u.patientRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}
	return converter.PatientsToResponses(patients), nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, actor *policy.Principal, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.findManaged(u.db.WithContext(ctx), actor, id)
	if err != nil {
		return nil, err
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, actor *policy.Principal, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.findManaged(tx, actor, id)
	if err != nil {
		return nil, err
	}
	oldValue := converter.PatientToResponse(patient)

	var fields []uniqueField
	if req.NationalID != nil && *req.NationalID != patient.NationalID {
		fields = append(fields, uniqueField{column: "national_id", field: "national_id", value: *req.NationalID})
	}
	if req.Phone != nil && *req.Phone != patient.Phone {
		fields = append(fields, uniqueField{column: "phone", field: "phone", value: *req.Phone})
	}
	if err := checkUnique(tx, u.patientRepo.ExistsBy, id, fields...); err != nil {
		return nil, err
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.DiseaseType != nil {
		patient.DiseaseType = *req.DiseaseType
	}
	if req.RoomNumber != nil {
		patient.RoomNumber = *req.RoomNumber
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}
	if req.NationalID != nil {
		patient.NationalID = *req.NationalID
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.Age != nil {
		patient.Age = *req.Age
	}
	if req.Status != nil {
		patient.Status = *req.Status
	}

	if err := u.patientRepo.Update(tx, patient); err != nil {
		if dup := duplicateKeyError(err, "national_id", "phone"); dup != nil {
			return nil, dup
		}
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	newValue := converter.PatientToResponse(patient)
	if err := u.auditService.LogUpdate(tx, &actor.UserID, entity.AuditActionPatientUpdate, "patient", id.String(), oldValue, newValue); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

// DeletePatient removes the patient together with its links and every record about it.
func (u *patientUsecase) DeletePatient(ctx context.Context, actor *policy.Principal, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.findManaged(tx, actor, id)
	if err != nil {
		return err
	}

	for _, cleaner := range u.recordCleaners {
		if err := cleaner.DeleteByPatient(tx, id); err != nil {
			u.log.Warnf("Failed to delete records of patient: %+v", err)
			return err
		}
	}
	if err := u.assignmentRepo.DeletePatientLinks(tx, id); err != nil {
		u.log.Warnf("Failed to delete patient assignments: %+v", err)
		return err
	}
	if _, err := u.patientRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete patient: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(tx, &actor.UserID, entity.AuditActionPatientDelete, "patient", id.String(), converter.PatientToResponse(patient)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *patientUsecase) AddCaregivers(ctx context.Context, actor *policy.Principal, id uuid.UUID, req *dto.AddCaregiversRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if _, err := u.findManaged(tx, actor, id); err != nil {
		return nil, err
	}
	if len(dedupeIDs(req.Doctors))+len(dedupeIDs(req.Nurses)) == 0 {
		return nil, invalidField("doctors", "doctors or nurses must contain at least one caregiver")
	}
	if err := u.addCaregivers(tx, actor, id, req.Doctors, req.Nurses); err != nil {
		return nil, err
	}

	if err := u.auditService.LogEvent(tx, &actor.UserID, entity.AuditActionAssignmentAdd, entity.JSON{
		"patient_id": id.String(),
		"doctors":    req.Doctors,
		"nurses":     req.Nurses,
	}); err != nil {
		return nil, err
	}

	patient, err := u.patientRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to reload patient: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

// RemoveCaregiver unlinks a doctor or nurse from the patient. Records already
// addressed to the caregiver keep their recipient snapshot.
func (u *patientUsecase) RemoveCaregiver(ctx context.Context, actor *policy.Principal, id, userID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if _, err := u.findManaged(tx, actor, id); err != nil {
		return err
	}

	user, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return err
	}
	if user == nil || !user.Role.IsCaregiver() {
		return ErrAssignmentNotFound
	}

	removed, err := u.assignmentRepo.RemovePatientCaregiver(tx, id, user.Role, userID)
	if err != nil {
		u.log.Warnf("Failed to remove caregiver from patient: %+v", err)
		return err
	}
	if !removed {
		return ErrAssignmentNotFound
	}

	if err := u.auditService.LogEvent(tx, &actor.UserID, entity.AuditActionAssignmentRemove, entity.JSON{
		"patient_id": id.String(),
		"user_id":    userID.String(),
		"role":       user.Role,
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

// ListPatientsOfUser lists the patients a doctor or nurse treats, limited to the
// admin's own patients.
func (u *patientUsecase) ListPatientsOfUser(ctx context.Context, actor *policy.Principal, userID uuid.UUID) ([]dto.PatientResponse, error) {
	db := u.db.WithContext(ctx)
	user, err := u.userRepo.FindByID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil || !user.Role.IsCaregiver() {
		return nil, ErrUserNotFound
	}
	if !policy.CanManageUser(actor, user) {
		return nil, ErrForbidden
	}

	filter := caregiverFilter(user.Role, userID, "")
	if !policy.IsSuperUser(actor) {
		filter.CreatedByID = &actor.UserID
	}

	patients, err := u.patientRepo.FindAll(db, filter)
	if err != nil {
		u.log.Warnf("Failed to list patients of user: %+v", err)
		return nil, err
	}
	return converter.PatientsToResponses(patients), nil
}

func (u *patientUsecase) ListMyPatients(ctx context.Context, actor *policy.Principal, search string) ([]dto.PatientResponse, error) {
	if !actor.Role.IsCaregiver() {
		return nil, ErrForbidden
	}
	patients, err := u.patientRepo.FindAll(u.db.WithContext(ctx), caregiverFilter(actor.Role, actor.UserID, search))
	if err != nil {
		u.log.Warnf("Failed to list patients of caregiver: %+v", err)
		return nil, err
	}
	return converter.PatientsToResponses(patients), nil
}

func (u *patientUsecase) GetMyPatient(ctx context.Context, actor *policy.Principal, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil || !patient.HasCaregiver(actor.UserID, actor.Role) {
		return nil, ErrPatientNotFound
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) findManaged(db *gorm.DB, actor *policy.Principal, id uuid.UUID) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	if !policy.CanManagePatient(actor, patient) {
		return nil, ErrForbidden
	}
	return patient, nil
}

func caregiverFilter(role entity.Role, userID uuid.UUID, search string) entity.PatientFilter {
	filter := entity.PatientFilter{Search: search}
	if role == entity.RoleDoctor {
		filter.DoctorID = &userID
	} else {
		filter.NurseID = &userID
	}
	return filter
}
