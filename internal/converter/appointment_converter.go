package converter

import (
	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to its wire shape
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:        appointment.ID,
		Doctor:    appointment.DoctorName,
		User:      appointment.PatientEmail,
		Date:      appointment.Date.Format("2006-01-02"),
		Time:      append([]string(nil), appointment.TimeSlots...),
		Fee:       appointment.Fee.StringFixed(2),
		Status:    string(appointment.Status),
		CreatedAt: appointment.CreatedAt,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
