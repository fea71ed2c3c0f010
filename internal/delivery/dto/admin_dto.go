package dto

import "time"

// Request DTOs

type CreateAdminRequest struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
}

type SetBloodStorageRequest struct {
	Type     string `json:"type" validate:"required"`
	Rhesus   string `json:"rhesus" validate:"required"`
	Quantity *int   `json:"quantity" validate:"required,gte=0"`
}

// Response DTOs

// CreateAdminResponse is the only place the secret key is ever returned
type CreateAdminResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	SecretKey string    `json:"secretKey"`
	CreatedAt time.Time `json:"createdAt"`
}

type BloodStorageResponse struct {
	ID        uint      `json:"id"`
	Type      string    `json:"type"`
	Rhesus    string    `json:"rhesus"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updatedAt"`
}
