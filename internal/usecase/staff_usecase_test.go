package usecase

import (
	"context"
	"testing"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/policy"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staffRequest(role, suffix string) *dto.StaffSignupRequest {
	return &dto.StaffSignupRequest{
		Email:      role + suffix + "@hospital.test",
		Username:   role + suffix,
		Name:       "Staff " + suffix,
		Phone:      "07000000" + suffix,
		NationalID: "STAFF" + suffix,
		Role:       role,
		Password:   "password123",
	}
}

func TestStaff_CreateAndScopeToCreator(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, entity.RoleAdmin, nil)
	otherAdmin := env.seedUser(t, entity.RoleAdmin, nil)

	req := staffRequest("doctor", "01")
	req.Specialization = "Cardiology"
	doctor, err := env.staff.CreateStaff(ctx, admin, req)
	require.NoError(t, err)
	assert.Equal(t, "doctor", doctor.Role)
	assert.Equal(t, "Cardiology", doctor.Specialization)
	assert.True(t, doctor.IsActive)

	_, err = env.staff.CreateStaff(ctx, otherAdmin, staffRequest("nurse", "02"))
	require.NoError(t, err)

	doctors, err := env.staff.ListStaff(ctx, admin, entity.RoleDoctor, "")
	require.NoError(t, err)
	assert.Len(t, doctors, 1)

	nurses, err := env.staff.ListStaff(ctx, admin, entity.RoleNurse, "")
	require.NoError(t, err)
	assert.Empty(t, nurses, "admins only see accounts they created")

	names, err := env.staff.ListStaffNames(ctx, admin, entity.RoleDoctor)
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Equal(t, "Staff 01", names[0].Name)

	found, err := env.staff.ListStaff(ctx, admin, entity.RoleDoctor, "staff 0")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	_, err = env.staff.GetAccount(ctx, otherAdmin, doctor.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	superUser := &policy.Principal{UserID: uuid.New(), Role: entity.RoleAdmin, IsSuperUser: true}
	all, err := env.staff.ListStaff(ctx, superUser, entity.RoleNurse, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStaff_PhoneAndNationalIDAreUnique(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, entity.RoleAdmin, nil)

	_, err := env.staff.CreateStaff(ctx, admin, staffRequest("doctor", "10"))
	require.NoError(t, err)

	dupPhone := staffRequest("nurse", "11")
	dupPhone.Phone = "0700000010"
	_, err = env.staff.CreateStaff(ctx, admin, dupPhone)
	var fieldErrs *FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, ErrConflict, fieldErrs.Kind)
	assert.Contains(t, fieldErrs.Fields, "phone")

	dupNationalID := staffRequest("nurse", "12")
	dupNationalID.NationalID = "STAFF10"
	_, err = env.staff.CreateStaff(ctx, admin, dupNationalID)
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs.Fields, "national_id")

	nurses, err := env.staff.ListStaff(ctx, admin, entity.RoleNurse, "")
	require.NoError(t, err)
	assert.Empty(t, nurses)
}

func TestStaff_NursesHaveNoSpecialization(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, entity.RoleAdmin, nil)

	req := staffRequest("nurse", "20")
	req.Specialization = "Surgery"
	_, err := env.staff.CreateStaff(context.Background(), admin, req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestStaff_UpdateAndDeactivate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, entity.RoleAdmin, nil)
	doctor := env.seedUser(t, entity.RoleDoctor, admin)

	spec := "Neurology"
	inactive := false
	updated, err := env.staff.UpdateAccount(ctx, admin, doctor.UserID, &dto.UpdateAccountRequest{
		Specialization: &spec,
		IsActive:       &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Neurology", updated.Specialization)
	assert.False(t, updated.IsActive)

	user, err := env.staff.GetAccount(ctx, admin, doctor.UserID)
	require.NoError(t, err)
	_, err = env.auth.Login(ctx, &dto.LoginRequest{Username: user.Username, Password: "password123"})
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestStaff_DeleteCascadesLinksAndRecords(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, entity.RoleAdmin, nil)
	doctor := env.seedUser(t, entity.RoleDoctor, admin)
	nurse := env.seedUser(t, entity.RoleNurse, admin)
	patient := env.seedPatient(t, admin, doctor, nurse)

	_, err := env.assignments.AddNursesToDoctor(ctx, admin, &dto.AssignNursesRequest{DoctorID: doctor.UserID, NurseIDs: []uuid.UUID{nurse.UserID}})
	require.NoError(t, err)
	report, err := env.nurseReport.Create(ctx, nurse, &dto.NurseReportRequest{
		Title: "Night shift", Patient: patient.ID, Doctors: []uuid.UUID{doctor.UserID},
	}, CreateOptions{})
	require.NoError(t, err)

	require.NoError(t, env.staff.DeleteAccount(ctx, admin, nurse.UserID))

	_, err = env.staff.GetAccount(ctx, admin, nurse.UserID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	nurses, err := env.assignments.ListMyNurses(ctx, doctor.UserID)
	require.NoError(t, err)
	assert.Empty(t, nurses)

	_, err = env.nurseReport.Get(ctx, doctor, report.ID, RecordScope{Received: true})
	assert.ErrorIs(t, err, ErrRecordNotFound)

	reloaded, err := env.patients.GetPatient(ctx, admin, patient.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Nurses)
}

func TestStaff_ListRelatedUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, entity.RoleAdmin, nil)
	doctor := env.seedUser(t, entity.RoleDoctor, admin)
	nurse := env.seedUser(t, entity.RoleNurse, admin)

	_, err := env.assignments.AddNursesToDoctor(ctx, admin, &dto.AssignNursesRequest{DoctorID: doctor.UserID, NurseIDs: []uuid.UUID{nurse.UserID}})
	require.NoError(t, err)

	related, err := env.staff.ListRelatedUsers(ctx, admin, doctor.UserID)
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, nurse.UserID, related[0].ID)

	related, err = env.staff.ListRelatedUsers(ctx, admin, nurse.UserID)
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, doctor.UserID, related[0].ID)
}

func TestAdmin_DeleteAdminOwningPatientsIsRefused(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	superUser := &policy.Principal{UserID: uuid.New(), Role: entity.RoleAdmin, IsSuperUser: true}
	admin := env.seedUser(t, entity.RoleAdmin, nil)
	idle := env.seedUser(t, entity.RoleAdmin, nil)
	env.seedPatient(t, admin)

	err := env.admins.DeleteAdmin(ctx, superUser, admin.UserID)
	assert.ErrorIs(t, err, ErrAdminOwnsPatients)

	require.NoError(t, env.admins.DeleteAdmin(ctx, superUser, idle.UserID))
	_, err = env.admins.GetAdmin(ctx, idle.UserID)
	assert.ErrorIs(t, err, ErrAdminNotFound)

	active, err := env.admins.ListAdmins(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, admin.UserID, active[0].ID)
}
