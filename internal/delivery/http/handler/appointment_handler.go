package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/delivery/http/middleware"
	"clinic-appointment-service/internal/usecase"
	"clinic-appointment-service/pkg/response"
	"clinic-appointment-service/pkg/validator"

	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewAppointmentHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

// CreateAppointment handles booking
// @Summary Book an appointment
// @Description Book one or more slots with a doctor on a date
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Create Appointment Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	userEmail, ok := middleware.GetUserEmailFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.bookingUsecase.CreateAppointment(r.Context(), userID, userEmail, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDate, usecase.ErrNoSlotSelected, usecase.ErrPastDate, usecase.ErrUnknownSlot:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrDoctorUnavailable:
			response.Conflict(w, "Doctor is currently unavailable")
		case usecase.ErrSlotTaken:
			response.Conflict(w, "One or more selected slots are already booked")
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

// CancelAppointment handles cancellation
// @Summary Cancel an appointment
// @Description Cancel an ongoing appointment (owner or admin)
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/cancel [post]
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	userEmail, ok := middleware.GetUserEmailFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	roleID, ok := middleware.GetRoleIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointmentID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.bookingUsecase.CancelAppointment(r.Context(), userID, userEmail, roleID, appointmentID)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrNotAppointmentOwner:
			response.Forbidden(w, "Appointment belongs to another patient")
		case usecase.ErrAppointmentClosed:
			response.Conflict(w, "Appointment is already cancelled or completed")
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", appointment)
}

// CompleteAppointment handles explicit completion
// @Summary Complete an appointment
// @Description Mark an ongoing appointment completed (doctor or admin)
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/complete [post]
func (h *AppointmentHandler) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	roleID, ok := middleware.GetRoleIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointmentID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.bookingUsecase.CompleteAppointment(r.Context(), userID, roleID, appointmentID)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrNotAppointmentDoctor:
			response.Forbidden(w, "Appointment belongs to another doctor")
		case usecase.ErrAppointmentClosed:
			response.Conflict(w, "Appointment is already cancelled or completed")
		default:
			response.InternalServerError(w, "Failed to complete appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment completed successfully", appointment)
}
