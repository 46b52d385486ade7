package handler

import (
	"net/http"

	"clinic-appointment-service/internal/delivery/http/middleware"
	"clinic-appointment-service/internal/usecase"
	"clinic-appointment-service/pkg/response"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase}
}

// PatientDashboard handles the patient overview
// @Summary Patient dashboard
// @Description Status counts and full history for the session patient
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /dashboard/patient [get]
func (h *DashboardHandler) PatientDashboard(w http.ResponseWriter, r *http.Request) {
	userEmail, ok := middleware.GetUserEmailFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	dashboard, err := h.dashboardUsecase.PatientDashboard(r.Context(), userEmail)
	if err != nil {
		response.InternalServerError(w, "Failed to build dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}

// DoctorDashboard handles the doctor overview
// @Summary Doctor dashboard
// @Description Income, patient count, and caseload for the session doctor
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /dashboard/doctor [get]
func (h *DashboardHandler) DoctorDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	dashboard, err := h.dashboardUsecase.DoctorDashboard(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor profile not found")
		default:
			response.InternalServerError(w, "Failed to build dashboard")
		}
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}

// AdminDashboard handles the clinic-wide overview
// @Summary Admin dashboard
// @Description Clinic-wide counts and the full appointment list
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /dashboard/admin [get]
func (h *DashboardHandler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboardUsecase.AdminDashboard(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to build dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}
