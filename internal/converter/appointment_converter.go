package converter

import (
	"blood-donation-api/internal/delivery/dto"
	"blood-donation-api/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:         appointment.ID,
		UserID:     appointment.UserID,
		LocationID: appointment.LocationID,
		Status:     string(appointment.Status),
		PdfURL:     appointment.PdfURL,
		Location:   LocationToResponse(appointment.Location),
		CreatedAt:  appointment.CreatedAt,
		UpdatedAt:  appointment.UpdatedAt,
	}

	// avoid recursing back into the user's appointments
	if appointment.User != nil {
		user := *appointment.User
		user.Appointments = nil
		response.User = UserToResponse(&user)
	}

	if len(appointment.Questionnaire) > 0 {
		response.Questionnaire = make([]dto.QuestionnaireResponse, len(appointment.Questionnaire))
		for i, q := range appointment.Questionnaire {
			response.Questionnaire[i] = dto.QuestionnaireResponse{
				ID:       q.ID,
				Number:   q.Number,
				Question: q.Question,
				Answer:   q.Answer,
			}
		}
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
