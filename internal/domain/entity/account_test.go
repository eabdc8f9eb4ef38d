package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserAccount(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name    string
		user    *User
		want    Role
		wantErr bool
	}{
		{"admin", &User{ID: id, Role: RoleAdmin, AdminProfile: &AdminProfile{UserID: id}}, RoleAdmin, false},
		{"doctor", &User{ID: id, Role: RoleDoctor, DoctorProfile: &DoctorProfile{UserID: id}}, RoleDoctor, false},
		{"nurse", &User{ID: id, Role: RoleNurse, NurseProfile: &NurseProfile{UserID: id}}, RoleNurse, false},
		{"doctor without profile", &User{ID: id, Role: RoleDoctor}, "", true},
		{"nurse with doctor profile", &User{ID: id, Role: RoleNurse, DoctorProfile: &DoctorProfile{UserID: id}}, "", true},
		{"unknown role", &User{ID: id, Role: "patient"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, err := tt.user.Account()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrProfileMismatch)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, account.Role())
			assert.Equal(t, id, account.UserID())
		})
	}
}

func TestNewAccount(t *testing.T) {
	u := &User{ID: uuid.New(), Role: RoleDoctor}

	account, err := NewAccount(u, "cardiology")
	require.NoError(t, err)

	doctor, ok := account.(DoctorAccount)
	require.True(t, ok)
	assert.Equal(t, "cardiology", doctor.Profile.Specialization)

	_, err = NewAccount(&User{Role: "patient"}, "")
	assert.ErrorIs(t, err, ErrProfileMismatch)
}

func TestRoleCounterpart(t *testing.T) {
	assert.Equal(t, RoleNurse, RoleDoctor.Counterpart())
	assert.Equal(t, RoleDoctor, RoleNurse.Counterpart())
	assert.Equal(t, Role(""), RoleAdmin.Counterpart())
	assert.True(t, RoleNurse.IsCaregiver())
	assert.False(t, RoleAdmin.IsCaregiver())
}

func TestIsRecipient(t *testing.T) {
	nurse := uuid.New()
	report := &DoctorReport{Nurses: []NurseProfile{{UserID: nurse}}}

	assert.True(t, IsRecipient(report, nurse))
	assert.False(t, IsRecipient(report, uuid.New()))
}
