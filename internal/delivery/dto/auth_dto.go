package dto

// Request DTOs

// ProfileFields are the optional demographic fields shared by signup and admin user creation
type ProfileFields struct {
	BirthPlace  string  `json:"birthPlace" validate:"omitempty,max=255"`
	Gender      string  `json:"gender"`
	Job         string  `json:"job" validate:"omitempty,max=255"`
	PhoneNumber string  `json:"phoneNumber" validate:"omitempty,min=10,max=20"`
	WeightKg    float64 `json:"weightKg" validate:"gte=0"`
	HeightCm    float64 `json:"heightCm" validate:"gte=0"`
	BloodType   string  `json:"bloodType"`
	Rhesus      string  `json:"rhesus"`
	Address     string  `json:"address"`
	NoRT        int     `json:"noRt" validate:"gte=0"`
	NoRW        int     `json:"noRw" validate:"gte=0"`
	Village     string  `json:"village" validate:"omitempty,max=255"`
	District    string  `json:"district" validate:"omitempty,max=255"`
	City        string  `json:"city" validate:"omitempty,max=255"`
	Province    string  `json:"province" validate:"omitempty,max=255"`
}

type SignupRequest struct {
	NIK       string `json:"nik" validate:"required,len=16,numeric"`
	Name      string `json:"name" validate:"required,min=2,max=255"`
	Password  string `json:"password" validate:"required,min=8"`
	BirthDate string `json:"birthDate" validate:"required"` // Format: YYYY-MM-DD
	ProfileFields
}

type LoginRequest struct {
	NIK      string `json:"nik" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response DTOs

type SignupResponse struct {
	UserID uint `json:"userId"`
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}
