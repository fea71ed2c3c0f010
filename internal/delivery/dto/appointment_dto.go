package dto

import "time"

// Request DTOs

type QuestionnaireItem struct {
	ItemNumber int    `json:"itemNumber" validate:"required,gt=0"`
	Question   string `json:"question" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
}

type QuestionnaireSection struct {
	Items []QuestionnaireItem `json:"items" validate:"dive"`
}

// CreateAppointmentRequest defaults Status to SCHEDULED when empty
type CreateAppointmentRequest struct {
	LocationID            uint                   `json:"locationId" validate:"required,gt=0"`
	Status                string                 `json:"status"`
	QuestionnaireSections []QuestionnaireSection `json:"questionnaireSections" validate:"dive"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Response DTOs

type QuestionnaireResponse struct {
	ID       uint   `json:"id"`
	Number   int    `json:"number"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type AppointmentResponse struct {
	ID            uint                    `json:"id"`
	UserID        uint                    `json:"userId"`
	LocationID    uint                    `json:"locationId"`
	Status        string                  `json:"status"`
	PdfURL        *string                 `json:"pdfUrl"`
	Location      *LocationResponse       `json:"location,omitempty"`
	User          *UserResponse           `json:"user,omitempty"`
	Questionnaire []QuestionnaireResponse `json:"questionnaire,omitempty"`
	CreatedAt     time.Time               `json:"createdAt"`
	UpdatedAt     time.Time               `json:"updatedAt"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
