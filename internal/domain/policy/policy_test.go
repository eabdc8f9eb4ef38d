package policy

import (
	"testing"

	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fixture struct {
	admin, otherAdmin         *Principal
	doctor, otherDoctor       *Principal
	nurse, otherNurse, nurse2 *Principal
	superuser                 *Principal
	patient                   *entity.Patient
}

func newFixture() fixture {
	f := fixture{
		admin:       &Principal{UserID: uuid.New(), Role: entity.RoleAdmin},
		otherAdmin:  &Principal{UserID: uuid.New(), Role: entity.RoleAdmin},
		doctor:      &Principal{UserID: uuid.New(), Role: entity.RoleDoctor},
		otherDoctor: &Principal{UserID: uuid.New(), Role: entity.RoleDoctor},
		nurse:       &Principal{UserID: uuid.New(), Role: entity.RoleNurse},
		otherNurse:  &Principal{UserID: uuid.New(), Role: entity.RoleNurse},
		nurse2:      &Principal{UserID: uuid.New(), Role: entity.RoleNurse},
		superuser:   &Principal{UserID: uuid.New(), Role: entity.RoleAdmin, IsSuperUser: true},
	}
	f.patient = &entity.Patient{
		ID:          uuid.New(),
		CreatedByID: f.admin.UserID,
		Doctors:     []entity.DoctorProfile{{UserID: f.doctor.UserID}, {UserID: f.otherDoctor.UserID}},
		Nurses:      []entity.NurseProfile{{UserID: f.nurse.UserID}, {UserID: f.otherNurse.UserID}},
	}
	return f
}

func TestPredicates(t *testing.T) {
	f := newFixture()

	assert.False(t, IsAuthenticated(nil))
	assert.False(t, IsAuthenticated(&Principal{}))
	assert.True(t, IsAuthenticated(f.nurse))

	assert.True(t, HasRole(f.doctor, entity.RoleDoctor, entity.RoleNurse))
	assert.False(t, HasRole(f.admin, entity.RoleDoctor, entity.RoleNurse))
	assert.False(t, HasRole(nil, entity.RoleAdmin))

	assert.True(t, IsSuperUser(f.superuser))
	assert.False(t, IsSuperUser(f.admin))
}

func TestCanViewRecord_DoctorReport(t *testing.T) {
	f := newFixture()
	addressed := &entity.DoctorReport{
		DoctorID:  f.doctor.UserID,
		PatientID: f.patient.ID,
		Nurses:    []entity.NurseProfile{{UserID: f.nurse.UserID}},
	}
	unfiltered := &entity.DoctorReport{DoctorID: f.doctor.UserID, PatientID: f.patient.ID, Unfiltered: true}
	emptySnapshot := &entity.DoctorReport{DoctorID: f.doctor.UserID, PatientID: f.patient.ID}

	tests := []struct {
		name      string
		principal *Principal
		record    entity.CareRecord
		want      bool
	}{
		{"author", f.doctor, addressed, true},
		{"recipient nurse", f.nurse, addressed, true},
		{"assigned nurse outside recipient set", f.otherNurse, addressed, false},
		{"unassigned nurse", f.nurse2, addressed, false},
		{"assigned nurse on unfiltered record", f.otherNurse, unfiltered, true},
		{"unassigned nurse on unfiltered record", f.nurse2, unfiltered, false},
		{"assigned nurse on record with empty snapshot", f.otherNurse, emptySnapshot, false},
		{"other doctor treating the patient", f.otherDoctor, addressed, false},
		{"other doctor on unfiltered record", f.otherDoctor, unfiltered, false},
		{"owning admin", f.admin, addressed, true},
		{"foreign admin", f.otherAdmin, addressed, false},
		{"superuser", f.superuser, addressed, true},
		{"anonymous", nil, addressed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanViewRecord(tt.principal, tt.record, f.patient))
		})
	}
}

func TestCanViewRecord_NurseReport(t *testing.T) {
	f := newFixture()
	report := &entity.NurseReport{
		NurseID:   f.nurse.UserID,
		PatientID: f.patient.ID,
		Doctors:   []entity.DoctorProfile{{UserID: f.doctor.UserID}},
	}

	assert.True(t, CanViewRecord(f.nurse, report, f.patient))
	assert.True(t, CanViewRecord(f.doctor, report, f.patient))
	assert.False(t, CanViewRecord(f.otherDoctor, report, f.patient))
	assert.False(t, CanViewRecord(f.otherNurse, report, f.patient))
}

func TestCanModifyRecord(t *testing.T) {
	f := newFixture()
	ray := &entity.Ray{
		DoctorID:  f.doctor.UserID,
		PatientID: f.patient.ID,
		Nurses:    []entity.NurseProfile{{UserID: f.nurse.UserID}},
	}

	assert.True(t, CanModifyRecord(f.doctor, ray, f.patient))
	assert.True(t, CanModifyRecord(f.admin, ray, f.patient))
	assert.True(t, CanModifyRecord(f.superuser, ray, f.patient))
	assert.False(t, CanModifyRecord(f.nurse, ray, f.patient))
	assert.False(t, CanModifyRecord(f.otherDoctor, ray, f.patient))
	assert.False(t, CanModifyRecord(f.otherAdmin, ray, f.patient))
}

func TestPatientAccess(t *testing.T) {
	f := newFixture()

	assert.True(t, CanManagePatient(f.admin, f.patient))
	assert.True(t, CanManagePatient(f.superuser, f.patient))
	assert.False(t, CanManagePatient(f.otherAdmin, f.patient))
	assert.False(t, CanManagePatient(f.doctor, f.patient))

	assert.True(t, CanViewPatient(f.doctor, f.patient))
	assert.True(t, CanViewPatient(f.nurse, f.patient))
	assert.False(t, CanViewPatient(f.nurse2, f.patient))

	assert.True(t, CanAuthorRecord(f.doctor, entity.RoleDoctor, f.patient))
	assert.False(t, CanAuthorRecord(f.doctor, entity.RoleNurse, f.patient))
	assert.False(t, CanAuthorRecord(f.nurse2, entity.RoleNurse, f.patient))
}

func TestCanManageUser(t *testing.T) {
	f := newFixture()
	createdBy := f.admin.UserID
	doctor := &entity.User{ID: f.doctor.UserID, Role: entity.RoleDoctor, CreatedByID: &createdBy}

	assert.True(t, CanManageUser(f.admin, doctor))
	assert.True(t, CanManageUser(f.superuser, doctor))
	assert.False(t, CanManageUser(f.otherAdmin, doctor))
	assert.False(t, CanManageUser(f.nurse, doctor))
	assert.False(t, CanManageUser(f.admin, &entity.User{ID: uuid.New(), Role: entity.RoleNurse}))
}
