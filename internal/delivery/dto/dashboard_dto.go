package dto

// PatientDashboardResponse summarizes the session patient's bookings:
// counts by status plus the full history with the record shape the
// cancel affordance needs.
type PatientDashboardResponse struct {
	Ongoing      int                   `json:"ongoing"`
	Completed    int                   `json:"completed"`
	Cancelled    int                   `json:"cancelled"`
	Appointments []AppointmentResponse `json:"appointments"`
}

// DoctorDashboardResponse summarizes the session doctor's caseload.
// Income is the exact decimal sum of fees over Completed appointments.
type DoctorDashboardResponse struct {
	Income       string                `json:"income"`
	Patients     int                   `json:"patients"`
	Ongoing      int                   `json:"ongoing"`
	Appointments []AppointmentResponse `json:"appointments"`
}

// AdminDashboardResponse is the clinic-wide view.
type AdminDashboardResponse struct {
	Doctors      int64                 `json:"doctors"`
	Patients     int64                 `json:"patients"`
	Ongoing      int                   `json:"ongoing"`
	Appointments []AppointmentResponse `json:"appointments"`
}
