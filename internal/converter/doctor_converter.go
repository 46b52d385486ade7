package converter

import (
	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/domain/entity"
)

// DoctorProfileToResponse converts a DoctorProfile entity to DoctorResponse DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:           profile.UserID,
		Email:        profile.User.Email,
		FullName:     profile.FullName,
		Experience:   profile.Experience,
		Fee:          profile.Fee.StringFixed(2),
		Specialty:    profile.Specialty,
		Address:      profile.Address,
		About:        profile.About,
		Availability: string(profile.Availability),
		Image:        profile.Image,
	}
}

// DoctorProfilesToResponses converts a slice of DoctorProfile entities
func DoctorProfilesToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i := range profiles {
		responses[i] = *DoctorProfileToResponse(&profiles[i])
	}
	return responses
}
