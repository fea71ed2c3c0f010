package converter

import (
	"blood-donation-api/internal/delivery/dto"
	"blood-donation-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// UserToResponse converts a User entity to UserResponse DTO.
// Appointments are included when they were preloaded.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:             user.ID,
		NIK:            user.NIK,
		Name:           user.Name,
		ProfilePicture: user.ProfilePicture,
		BirthPlace:     user.BirthPlace,
		Job:            user.Job,
		PhoneNumber:    user.PhoneNumber,
		WeightKg:       user.WeightKg,
		HeightCm:       user.HeightCm,
		Address:        user.Address,
		NoRT:           user.NoRT,
		NoRW:           user.NoRW,
		Village:        user.Village,
		District:       user.District,
		City:           user.City,
		Province:       user.Province,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}

	if !user.BirthDate.IsZero() {
		response.BirthDate = user.BirthDate.Format(dateLayout)
	}
	if user.Gender != nil {
		g := string(*user.Gender)
		response.Gender = &g
	}
	if user.BloodType != nil {
		b := string(*user.BloodType)
		response.BloodType = &b
	}
	if user.Rhesus != nil {
		r := string(*user.Rhesus)
		response.Rhesus = &r
	}

	if len(user.Appointments) > 0 {
		response.Appointments = AppointmentsToResponses(user.Appointments)
	}

	return response
}

// UsersToResponses converts a slice of User entities to slice of UserResponse DTOs
func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i])
	}
	return responses
}
