package converter

import (
	"blood-donation-api/internal/delivery/dto"
	"blood-donation-api/internal/domain/entity"
)

func BloodStorageToResponse(storage *entity.BloodStorage) *dto.BloodStorageResponse {
	if storage == nil {
		return nil
	}

	return &dto.BloodStorageResponse{
		ID:        storage.ID,
		Type:      string(storage.Type),
		Rhesus:    string(storage.Rhesus),
		Quantity:  storage.Quantity,
		UpdatedAt: storage.UpdatedAt,
	}
}

func BloodStoragesToResponses(storages []entity.BloodStorage) []dto.BloodStorageResponse {
	responses := make([]dto.BloodStorageResponse, len(storages))
	for i := range storages {
		responses[i] = *BloodStorageToResponse(&storages[i])
	}
	return responses
}

func MessagesToResponses(messages []entity.Message) []dto.MessageResponse {
	responses := make([]dto.MessageResponse, len(messages))
	for i, msg := range messages {
		responses[i] = dto.MessageResponse{
			ID:        msg.ID,
			Sender:    string(msg.Sender),
			Message:   msg.Message,
			CreatedAt: msg.CreatedAt,
		}
	}
	return responses
}
