package dto

import "time"

// Request DTOs

// UpdateProfileRequest is a partial update. Password is only declared so a
// client sending it can be rejected.
type UpdateProfileRequest struct {
	NIK         *string  `json:"nik" validate:"omitempty,len=16,numeric"`
	Name        *string  `json:"name" validate:"omitempty,min=2,max=255"`
	Password    *string  `json:"password,omitempty"`
	BirthPlace  *string  `json:"birthPlace" validate:"omitempty,max=255"`
	BirthDate   *string  `json:"birthDate"`
	Gender      *string  `json:"gender"`
	Job         *string  `json:"job" validate:"omitempty,max=255"`
	PhoneNumber *string  `json:"phoneNumber" validate:"omitempty,min=10,max=20"`
	WeightKg    *float64 `json:"weightKg" validate:"omitempty,gte=0"`
	HeightCm    *float64 `json:"heightCm" validate:"omitempty,gte=0"`
	BloodType   *string  `json:"bloodType"`
	Rhesus      *string  `json:"rhesus"`
	Address     *string  `json:"address"`
	NoRT        *int     `json:"noRt" validate:"omitempty,gte=0"`
	NoRW        *int     `json:"noRw" validate:"omitempty,gte=0"`
	Village     *string  `json:"village" validate:"omitempty,max=255"`
	District    *string  `json:"district" validate:"omitempty,max=255"`
	City        *string  `json:"city" validate:"omitempty,max=255"`
	Province    *string  `json:"province" validate:"omitempty,max=255"`
}

type EditPasswordRequest struct {
	OldPassword        string `json:"oldPassword" validate:"required"`
	NewPassword        string `json:"newPassword" validate:"required"`
	ConfirmNewPassword string `json:"confirmNewPassword" validate:"required"`
}

// Response DTOs

type UserResponse struct {
	ID             uint                  `json:"id"`
	NIK            string                `json:"nik"`
	Name           string                `json:"name"`
	ProfilePicture *string               `json:"profilePicture"`
	BirthPlace     string                `json:"birthPlace"`
	BirthDate      string                `json:"birthDate"`
	Gender         *string               `json:"gender"`
	Job            string                `json:"job"`
	PhoneNumber    string                `json:"phoneNumber"`
	WeightKg       float64               `json:"weightKg"`
	HeightCm       float64               `json:"heightCm"`
	BloodType      *string               `json:"bloodType"`
	Rhesus         *string               `json:"rhesus"`
	Address        string                `json:"address"`
	NoRT           int                   `json:"noRt"`
	NoRW           int                   `json:"noRw"`
	Village        string                `json:"village"`
	District       string                `json:"district"`
	City           string                `json:"city"`
	Province       string                `json:"province"`
	Appointments   []AppointmentResponse `json:"appointments,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}
