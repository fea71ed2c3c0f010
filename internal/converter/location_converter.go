package converter

import (
	"blood-donation-api/internal/delivery/dto"
	"blood-donation-api/internal/domain/entity"
)

func LocationToResponse(location *entity.Location) *dto.LocationResponse {
	if location == nil {
		return nil
	}

	return &dto.LocationResponse{
		ID:        location.ID,
		Name:      location.Name,
		Latitude:  location.Latitude.InexactFloat64(),
		Longitude: location.Longitude.InexactFloat64(),
		StartTime: location.StartTime,
		EndTime:   location.EndTime,
		CreatedAt: location.CreatedAt,
		UpdatedAt: location.UpdatedAt,
	}
}

func LocationsToResponses(locations []entity.Location) []dto.LocationResponse {
	responses := make([]dto.LocationResponse, len(locations))
	for i := range locations {
		responses[i] = *LocationToResponse(&locations[i])
	}
	return responses
}
