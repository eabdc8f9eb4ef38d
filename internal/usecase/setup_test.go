package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"hospital-management-api/config"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/policy"
	"hospital-management-api/internal/infrastructure/mail"
	"hospital-management-api/internal/repository"
	"hospital-management-api/internal/service"
	"hospital-management-api/internal/testutil"
	"hospital-management-api/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type captureMailer struct {
	mu   sync.Mutex
	sent []mail.Message
}

func (m *captureMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *captureMailer) last(t *testing.T) mail.Message {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent, "no mail was sent")
	return m.sent[len(m.sent)-1]
}

// testEnv wires every usecase against SQLite and miniredis.
type testEnv struct {
	db     *gorm.DB
	redis  *miniredis.Miniredis
	mailer *captureMailer
	jwt    *jwt.JWTService
	tokens service.TokenStore

	auth         *authUsecase
	admins       AdminUsecase
	staff        StaffUsecase
	assignments  AssignmentUsecase
	patients     PatientUsecase
	doctorReport DoctorReportUsecase
	nurseReport  NurseReportUsecase
	rays         RayUsecase
	medicines    MedicineUsecase
	auditLogs    AuditLogUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	client, mr := testutil.NewRedis(t)
	log := testutil.NewLogger()
	mailer := &captureMailer{}

	userRepo := repository.NewUserRepository()
	profileRepo := repository.NewProfileRepository()
	patientRepo := repository.NewPatientRepository()
	assignmentRepo := repository.NewAssignmentRepository()
	catalogRepo := repository.NewMedicineCatalogRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	doctorReportRepo := repository.NewDoctorReportRepository()
	nurseReportRepo := repository.NewNurseReportRepository()
	rayRepo := repository.NewRayRepository()
	medicineRepo := repository.NewMedicineRepository()
	cleaners := []RecordCleaner{doctorReportRepo, nurseReportRepo, rayRepo, medicineRepo}

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
	})
	otpConfig := config.OTPConfig{TTL: 10 * time.Minute, MaxAttempts: 3}
	tokenStore := service.NewTokenStore(client)
	otpLimiter := service.NewOTPAttemptLimiter(client, otpConfig.TTL)
	auditService := service.NewAuditService(log, auditLogRepo)

	return &testEnv{
		db:     db,
		redis:  mr,
		mailer: mailer,
		jwt:    jwtService,
		tokens: tokenStore,

		auth:         NewAuthUsecase(db, log, userRepo, profileRepo, jwtService, tokenStore, otpLimiter, auditService, mailer, otpConfig).(*authUsecase),
		admins:       NewAdminUsecase(db, log, userRepo, profileRepo, patientRepo, tokenStore, auditService, mailer),
		staff:        NewStaffUsecase(db, log, userRepo, profileRepo, assignmentRepo, cleaners, tokenStore, auditService),
		assignments:  NewAssignmentUsecase(db, log, userRepo, profileRepo, assignmentRepo, auditService),
		patients:     NewPatientUsecase(db, log, patientRepo, userRepo, assignmentRepo, cleaners, auditService),
		doctorReport: NewDoctorReportUsecase(db, log, doctorReportRepo, patientRepo, profileRepo, auditService),
		nurseReport:  NewNurseReportUsecase(db, log, nurseReportRepo, patientRepo, profileRepo, auditService),
		rays:         NewRayUsecase(db, log, rayRepo, patientRepo, profileRepo, auditService),
		medicines:    NewMedicineUsecase(db, log, medicineRepo, catalogRepo, patientRepo, profileRepo, auditService),
		auditLogs:    NewAuditLogUsecase(db, log, auditLogRepo),
	}
}

var seq int

// seedUser inserts an active account with its profile and returns its principal.
func (e *testEnv) seedUser(t *testing.T, role entity.Role, createdBy *policy.Principal) *policy.Principal {
	t.Helper()
	seq++

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entity.User{
		Email:    fmt.Sprintf("%s%d@hospital.test", role, seq),
		Username: fmt.Sprintf("%s%d", role, seq),
		Name:     fmt.Sprintf("%s %d", role, seq),
		Phone:    fmt.Sprintf("0800%06d", seq),
		Password: string(hash),
		Role:     role,
		IsActive: true,
	}
	if role != entity.RoleAdmin {
		nationalID := fmt.Sprintf("NID%06d", seq)
		user.NationalID = &nationalID
	}
	if createdBy != nil {
		user.CreatedByID = &createdBy.UserID
	}
	require.NoError(t, createAccount(e.db, repository.NewUserRepository(), repository.NewProfileRepository(), user, ""))

	return &policy.Principal{UserID: user.ID, Role: role}
}

// seedPatient inserts a patient owned by admin and treated by caregivers.
func (e *testEnv) seedPatient(t *testing.T, admin *policy.Principal, caregivers ...*policy.Principal) *entity.Patient {
	t.Helper()
	seq++

	patient := &entity.Patient{
		Name:        fmt.Sprintf("Patient %d", seq),
		NationalID:  fmt.Sprintf("PNID%06d", seq),
		Phone:       fmt.Sprintf("0900%06d", seq),
		RoomNumber:  fmt.Sprintf("R%d", seq),
		CreatedByID: admin.UserID,
	}
	patientRepo := repository.NewPatientRepository()
	require.NoError(t, patientRepo.Create(e.db, patient))
	for _, c := range caregivers {
		e.assignPatient(t, patient.ID, c)
	}

	loaded, err := patientRepo.FindByID(e.db, patient.ID)
	require.NoError(t, err)
	return loaded
}

func (e *testEnv) assignPatient(t *testing.T, patientID uuid.UUID, caregiver *policy.Principal) {
	t.Helper()
	err := repository.NewAssignmentRepository().AddPatientCaregivers(e.db, patientID, caregiver.Role, []uuid.UUID{caregiver.UserID})
	require.NoError(t, err)
}

func (e *testEnv) unassignPatient(t *testing.T, patientID uuid.UUID, caregiver *policy.Principal) {
	t.Helper()
	_, err := repository.NewAssignmentRepository().RemovePatientCaregiver(e.db, patientID, caregiver.Role, caregiver.UserID)
	require.NoError(t, err)
}
