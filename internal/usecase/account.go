package usecase

import (
	"fmt"
	"strings"

	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/policy"
	"hospital-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// createAccount inserts the user and the profile matching its role.
func createAccount(tx *gorm.DB, userRepo repository.UserRepository, profileRepo repository.ProfileRepository, user *entity.User, specialization string) error {
	if err := userRepo.Create(tx, user); err != nil {
		return err
	}
	account, err := entity.NewAccount(user, specialization)
	if err != nil {
		return err
	}
	return profileRepo.Create(tx, account)
}

// identityUpdate holds the optional user fields shared by self-service and admin edits.
type identityUpdate struct {
	Email      *string
	Username   *string
	Name       *string
	Phone      *string
	NationalID *string
	Gender     *string
	Age        *int
}

// applyIdentityUpdate checks that changed unique fields are free, then applies the update to user.
func applyIdentityUpdate(tx *gorm.DB, userRepo repository.UserRepository, user *entity.User, upd identityUpdate) error {
	var fields []uniqueField
	if upd.Email != nil {
		email := normalizeEmail(*upd.Email)
		upd.Email = &email
		if email != user.Email {
			fields = append(fields, uniqueField{column: "email", field: "email", value: email})
		}
	}
	if upd.Username != nil && *upd.Username != user.Username {
		fields = append(fields, uniqueField{column: "username", field: "username", value: *upd.Username})
	}
	if upd.Phone != nil && *upd.Phone != user.Phone {
		fields = append(fields, uniqueField{column: "phone", field: "phone", value: *upd.Phone})
	}
	if upd.NationalID != nil && (user.NationalID == nil || *upd.NationalID != *user.NationalID) {
		fields = append(fields, uniqueField{column: "national_id", field: "national_id", value: *upd.NationalID})
	}
	if err := checkUnique(tx, userRepo.ExistsBy, user.ID, fields...); err != nil {
		return err
	}

	if upd.Email != nil {
		user.Email = *upd.Email
	}
	if upd.Username != nil {
		user.Username = *upd.Username
	}
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Phone != nil {
		user.Phone = *upd.Phone
	}
	if upd.NationalID != nil {
		user.NationalID = upd.NationalID
	}
	if upd.Gender != nil {
		user.Gender = *upd.Gender
	}
	if upd.Age != nil {
		user.Age = *upd.Age
	}
	return nil
}

// requireProfiles fails with a field error naming every id that is not a user of role.
func requireProfiles(tx *gorm.DB, profileRepo repository.ProfileRepository, role entity.Role, field string, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := profileRepo.ExistingIDs(tx, role, ids)
	if err != nil {
		return err
	}
	if missing := missingIDs(ids, found); len(missing) > 0 {
		return invalidField(field, fmt.Sprintf("unknown %s: %s", role, strings.Join(missing, ", ")))
	}
	return nil
}

// requireCaregivers rejects ids that do not currently treat the patient as role.
func requireCaregivers(patient *entity.Patient, role entity.Role, field string, ids []uuid.UUID) error {
	if missing := missingIDs(ids, patient.CaregiverIDs(role)); len(missing) > 0 {
		return invalidField(field, fmt.Sprintf("%s not assigned to patient: %s", role, strings.Join(missing, ", ")))
	}
	return nil
}

// requireManagedStaff loads every id as a user of role that the actor may manage.
// Unknown ids produce a field error; foreign accounts produce ErrForbidden.
func requireManagedStaff(tx *gorm.DB, userRepo repository.UserRepository, actor *policy.Principal, role entity.Role, field string, ids []uuid.UUID) error {
	var missing []string
	for _, id := range ids {
		user, err := userRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if user == nil || user.Role != role {
			missing = append(missing, id.String())
			continue
		}
		if !policy.CanManageUser(actor, user) {
			return ErrForbidden
		}
	}
	if len(missing) > 0 {
		return invalidField(field, fmt.Sprintf("unknown %s: %s", role, strings.Join(missing, ", ")))
	}
	return nil
}
