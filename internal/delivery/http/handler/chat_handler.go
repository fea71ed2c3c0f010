package handler

import (
	"encoding/json"
	"net/http"

	"blood-donation-api/internal/delivery/dto"
	"blood-donation-api/internal/usecase"
	"blood-donation-api/pkg/response"
	"blood-donation-api/pkg/validator"

	"github.com/sirupsen/logrus"
)

type ChatHandler struct {
	chatUsecase usecase.ChatUsecase
	validator   *validator.CustomValidator
	log         *logrus.Logger
}

func NewChatHandler(chatUsecase usecase.ChatUsecase, validator *validator.CustomValidator, log *logrus.Logger) *ChatHandler {
	return &ChatHandler{
		chatUsecase: chatUsecase,
		validator:   validator,
		log:         log,
	}
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req dto.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	history, err := h.chatUsecase.SendMessage(r.Context(), userID, &req)
	if err != nil {
		h.chatError(w, err, "Failed to send message")
		return
	}

	response.Success(w, http.StatusOK, "Message sent successfully", history)
}

func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	history, err := h.chatUsecase.GetHistory(r.Context(), userID)
	if err != nil {
		h.chatError(w, err, "Failed to get chat history")
		return
	}

	response.Success(w, http.StatusOK, "Chat history retrieved successfully", history)
}

func (h *ChatHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	if err := h.chatUsecase.ClearHistory(r.Context(), userID); err != nil {
		h.chatError(w, err, "Failed to clear chat history")
		return
	}

	response.Success(w, http.StatusOK, "Chat history cleared successfully", nil)
}

func (h *ChatHandler) chatError(w http.ResponseWriter, err error, message string) {
	switch err {
	case usecase.ErrChatUnavailable:
		response.ServiceUnavailable(w, "Chat assistant is not available")
	case usecase.ErrConversationNotFound:
		response.NotFound(w, "Conversation not found")
	case usecase.ErrUserNotFound:
		response.NotFound(w, "User not found")
	default:
		respondError(w, h.log, err, message)
	}
}
