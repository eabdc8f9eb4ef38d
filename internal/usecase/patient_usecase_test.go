package usecase

import (
	"context"
	"testing"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func patientRequest(suffix string) *dto.CreatePatientRequest {
	return &dto.CreatePatientRequest{
		Name:        "Patient " + suffix,
		DiseaseType: "Flu",
		RoomNumber:  "A" + suffix,
		NationalID:  "PAT" + suffix + "000",
		Phone:       "06000000" + suffix,
	}
}

func TestPatient_CreateWithCaregivers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, entity.RoleAdmin, nil)
	doctor := env.seedUser(t, entity.RoleDoctor, admin)
	nurse := env.seedUser(t, entity.RoleNurse, admin)

	req := patientRequest("01")
	req.Doctors = []uuid.UUID{doctor.UserID, doctor.UserID}
	req.Nurses = []uuid.UUID{nurse.UserID}
	patient, err := env.patients.CreatePatient(ctx, admin, req)
	require.NoError(t, err)
	assert.Equal(t, admin.UserID, patient.CreatedByID)
	require.Len(t, patient.Doctors, 1)
	require.Len(t, patient.Nurses, 1)
	assert.Equal(t, nurse.UserID, patient.Nurses[0].ID)

	mine, err := env.patients.ListMyPatients(ctx, nurse, "")
	require.NoError(t, err)
	require.Len(t, mine, 1)

	_, err = env.patients.GetMyPatient(ctx, doctor, patient.ID)
	assert.NoError(t, err)
}

func TestPatient_UnknownCaregiverIsFieldError(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, entity.RoleAdmin, nil)
	nurse := env.seedUser(t, entity.RoleNurse, admin)

	req := patientRequest("02")
	req.Doctors = []uuid.UUID{nurse.UserID}
	_, err := env.patients.CreatePatient(context.Background(), admin, req)

	var fieldErrs *FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, ErrInvalidInput, fieldErrs.Kind)
	assert.Contains(t, fieldErrs.Fields, "doctors")
}

func TestPatient_UniquenessOfPhoneAndNationalID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, entity.RoleAdmin, nil)

	_, err := env.patients.CreatePatient(ctx, admin, patientRequest("03"))
	require.NoError(t, err)

	dup := patientRequest("04")
	dup.NationalID = "PAT03000"
	_, err = env.patients.CreatePatient(ctx, admin, dup)
	assert.ErrorIs(t, err, ErrConflict)

	second, err := env.patients.CreatePatient(ctx, admin, patientRequest("05"))
	require.NoError(t, err)
	phone := "0600000003"
	_, err = env.patients.UpdatePatient(ctx, admin, second.ID, &dto.UpdatePatientRequest{Phone: &phone})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestPatient_AdminsOnlyManageOwnPatients(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, entity.RoleAdmin, nil)
	other := env.seedUser(t, entity.RoleAdmin, nil)
	patient := env.seedPatient(t, owner)

	_, err := env.patients.GetPatient(ctx, other, patient.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	list, err := env.patients.ListPatients(ctx, other, "")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = env.patients.GetPatient(ctx, owner, uuid.New())
	assert.ErrorIs(t, err, ErrPatientNotFound)

	status := "discharged"
	updated, err := env.patients.UpdatePatient(ctx, owner, patient.ID, &dto.UpdatePatientRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "discharged", updated.Status)
}

func TestPatient_SearchMatchesNameDiseaseAndRoom(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, entity.RoleAdmin, nil)

	req := patientRequest("06")
	req.DiseaseType = "Pneumonia"
	_, err := env.patients.CreatePatient(ctx, admin, req)
	require.NoError(t, err)
	_, err = env.patients.CreatePatient(ctx, admin, patientRequest("07"))
	require.NoError(t, err)

	byDisease, err := env.patients.ListPatients(ctx, admin, "pneu")
	require.NoError(t, err)
	assert.Len(t, byDisease, 1)

	byRoom, err := env.patients.ListPatients(ctx, admin, "a07")
	require.NoError(t, err)
	assert.Len(t, byRoom, 1)
}

func TestPatient_CaregiverManagement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, entity.RoleAdmin, nil)
	doctor := env.seedUser(t, entity.RoleDoctor, admin)
	nurse := env.seedUser(t, entity.RoleNurse, admin)
	patient := env.seedPatient(t, admin)

	resp, err := env.patients.AddCaregivers(ctx, admin, patient.ID, &dto.AddCaregiversRequest{
		Doctors: []uuid.UUID{doctor.UserID},
		Nurses:  []uuid.UUID{nurse.UserID},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Doctors, 1)
	assert.Len(t, resp.Nurses, 1)

	_, err = env.patients.AddCaregivers(ctx, admin, patient.ID, &dto.AddCaregiversRequest{Nurses: []uuid.UUID{nurse.UserID}})
	require.NoError(t, err, "adding an existing link is a no-op")

	ofDoctor, err := env.patients.ListPatientsOfUser(ctx, admin, doctor.UserID)
	require.NoError(t, err)
	assert.Len(t, ofDoctor, 1)

	require.NoError(t, env.patients.RemoveCaregiver(ctx, admin, patient.ID, nurse.UserID))
	err = env.patients.RemoveCaregiver(ctx, admin, patient.ID, nurse.UserID)
	assert.ErrorIs(t, err, ErrAssignmentNotFound)

	_, err = env.patients.GetMyPatient(ctx, nurse, patient.ID)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestPatient_DeleteRemovesRecords(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, entity.RoleAdmin, nil)
	doctor := env.seedUser(t, entity.RoleDoctor, admin)
	patient := env.seedPatient(t, admin, doctor)

	ray, err := env.rays.Create(ctx, doctor, &dto.RayRequest{Name: "Chest", Patient: patient.ID}, CreateOptions{})
	require.NoError(t, err)

	require.NoError(t, env.patients.DeletePatient(ctx, admin, patient.ID))

	_, err = env.rays.Get(ctx, doctor, ray.ID, RecordScope{})
	assert.ErrorIs(t, err, ErrRecordNotFound)
	mine, err := env.patients.ListMyPatients(ctx, doctor, "")
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestAssignment_DoctorNurseLinks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, entity.RoleAdmin, nil)
	doctor := env.seedUser(t, entity.RoleDoctor, admin)
	nurse := env.seedUser(t, entity.RoleNurse, admin)
	stranger := env.seedUser(t, entity.RoleNurse, nil)

	nurses, err := env.assignments.AddNursesToDoctor(ctx, admin, &dto.AssignNursesRequest{
		DoctorID: doctor.UserID, NurseIDs: []uuid.UUID{nurse.UserID},
	})
	require.NoError(t, err)
	assert.Len(t, nurses, 1)

	_, err = env.assignments.AddNursesToDoctor(ctx, admin, &dto.AssignNursesRequest{
		DoctorID: doctor.UserID, NurseIDs: []uuid.UUID{stranger.UserID},
	})
	assert.ErrorIs(t, err, ErrForbidden, "admins only link accounts they created")

	_, err = env.assignments.AddNursesToDoctor(ctx, admin, &dto.AssignNursesRequest{
		DoctorID: doctor.UserID, NurseIDs: []uuid.UUID{uuid.New()},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	got, err := env.assignments.GetMyNurse(ctx, doctor.UserID, nurse.UserID)
	require.NoError(t, err)
	assert.Equal(t, nurse.UserID, got.ID)

	doctors, err := env.assignments.ListMyDoctors(ctx, nurse.UserID)
	require.NoError(t, err)
	require.Len(t, doctors, 1)

	_, err = env.assignments.GetMyDoctor(ctx, stranger.UserID, doctor.UserID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	unlink := &dto.UnassignNurseRequest{DoctorID: doctor.UserID, NurseID: nurse.UserID}
	require.NoError(t, env.assignments.RemoveNurseFromDoctor(ctx, admin, unlink))
	err = env.assignments.RemoveNurseFromDoctor(ctx, admin, unlink)
	assert.ErrorIs(t, err, ErrAssignmentNotFound)
}
