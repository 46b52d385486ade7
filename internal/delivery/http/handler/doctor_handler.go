package handler

import (
	"encoding/json"
	"net/http"

	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/delivery/http/middleware"
	"clinic-appointment-service/internal/usecase"
	"clinic-appointment-service/pkg/response"
	"clinic-appointment-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DoctorHandler struct {
	doctorUsecase  usecase.DoctorUsecase
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase:  doctorUsecase,
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

// CreateDoctor handles doctor onboarding
// @Summary Create a doctor
// @Description Create a doctor account and profile (admin only)
// @Tags Doctors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateDoctorRequest true "Create Doctor Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/doctors [post]
func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.CreateDoctor(r.Context(), adminID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidSpecialty, usecase.ErrInvalidFee:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrDoctorNameTaken:
			response.Conflict(w, "A doctor with this name already exists")
		case usecase.ErrEmailAlreadyExists:
			response.Conflict(w, "Email already exists")
		default:
			response.InternalServerError(w, "Failed to create doctor")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Doctor created successfully", doctor)
}

// ListDoctors handles listing doctors
// @Summary List doctors
// @Description List all doctors, optionally filtered by specialty
// @Tags Doctors
// @Produce json
// @Param specialty query string false "Specialty filter"
// @Success 200 {object} response.Response
// @Router /doctors [get]
func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	specialty := r.URL.Query().Get("specialty")

	doctors, err := h.doctorUsecase.ListDoctors(r.Context(), specialty)
	if err != nil {
		switch err {
		case usecase.ErrInvalidSpecialty:
			response.Error(w, http.StatusBadRequest, "Unknown specialty", nil)
		default:
			response.InternalServerError(w, "Failed to list doctors")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// GetDoctor handles fetching one doctor
// @Summary Get a doctor
// @Description Get one doctor profile by ID
// @Tags Doctors
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id} [get]
func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

// GetSlots handles the availability grid for a doctor and day
// @Summary Get doctor availability
// @Description Get the hourly slot grid for a doctor on a date
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id}/slots [get]
func (h *DoctorHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter 'date' is required", nil)
		return
	}

	availability, err := h.bookingUsecase.GetAvailability(r.Context(), doctorID, date)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, "Date must be in YYYY-MM-DD format", nil)
		case usecase.ErrPastDate:
			response.Error(w, http.StatusBadRequest, "Date is in the past", nil)
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}

// SetAvailability handles bulk availability toggling
// @Summary Set doctor availability
// @Description Mark doctors Available or Unavailable (admin only)
// @Tags Doctors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SetAvailabilityRequest true "Set Availability Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/doctors/availability [put]
func (h *DoctorHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.SetAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctors, err := h.doctorUsecase.SetAvailability(r.Context(), adminID, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to set availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability updated successfully", doctors)
}

// RemoveDoctors handles bulk doctor removal
// @Summary Remove doctors
// @Description Remove doctors without ongoing appointments (admin only)
// @Tags Doctors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.RemoveDoctorsRequest true "Remove Doctors Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/doctors/remove [post]
func (h *DoctorHandler) RemoveDoctors(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.RemoveDoctorsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.doctorUsecase.RemoveDoctors(r.Context(), adminID, &req)
	if err != nil {
		switch err {
		case usecase.ErrRemovalNotConfirmed:
			response.Error(w, http.StatusBadRequest, "Removal requires confirmation", nil)
		default:
			response.InternalServerError(w, "Failed to remove doctors")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor removal processed", result)
}
