package converter

import (
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO.
// The doctor specialization is included when the profile is loaded.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		Name:        user.Name,
		Phone:       user.Phone,
		NationalID:  user.NationalID,
		Gender:      user.Gender,
		Age:         user.Age,
		Role:        user.Role.String(),
		IsActive:    user.IsActive,
		IsSuperUser: user.IsSuperUser,
		CreatedByID: user.CreatedByID,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}

	if user.DoctorProfile != nil {
		response.Specialization = user.DoctorProfile.Specialization
	}

	return response
}

func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i])
	}
	return responses
}

func UsersToNameResponses(users []entity.User) []dto.UserNameResponse {
	responses := make([]dto.UserNameResponse, len(users))
	for i, user := range users {
		responses[i] = dto.UserNameResponse{ID: user.ID, Name: user.Name}
	}
	return responses
}

func DoctorToCaregiver(doctor *entity.DoctorProfile) dto.CaregiverResponse {
	return dto.CaregiverResponse{
		ID:             doctor.UserID,
		Name:           doctor.User.Name,
		Email:          doctor.User.Email,
		Phone:          doctor.User.Phone,
		Specialization: doctor.Specialization,
	}
}

func NurseToCaregiver(nurse *entity.NurseProfile) dto.CaregiverResponse {
	return dto.CaregiverResponse{
		ID:    nurse.UserID,
		Name:  nurse.User.Name,
		Email: nurse.User.Email,
		Phone: nurse.User.Phone,
	}
}

func DoctorsToCaregivers(doctors []entity.DoctorProfile) []dto.CaregiverResponse {
	responses := make([]dto.CaregiverResponse, len(doctors))
	for i := range doctors {
		responses[i] = DoctorToCaregiver(&doctors[i])
	}
	return responses
}

func NursesToCaregivers(nurses []entity.NurseProfile) []dto.CaregiverResponse {
	responses := make([]dto.CaregiverResponse, len(nurses))
	for i := range nurses {
		responses[i] = NurseToCaregiver(&nurses[i])
	}
	return responses
}
