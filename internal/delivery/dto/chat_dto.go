package dto

import "time"

type ChatRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}

type MessageResponse struct {
	ID        uint      `json:"id"`
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
