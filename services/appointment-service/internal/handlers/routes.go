package handlers

import "net/http"

// Register wires the API surface onto the mux. Reads are public; mutations of
// existing records and the reporting endpoint require an admin token.
func Register(mux *http.ServeMux, appts *AppointmentHandler, admin *AuthHandler) {
	mux.HandleFunc("/api/v1/appointments", appts.Collection)
	mux.HandleFunc("/api/v1/appointments/stats", admin.RequireAdmin(appts.Stats))
	mux.HandleFunc("/api/v1/appointments/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut, http.MethodDelete:
			admin.RequireAdmin(appts.Item)(w, r)
		default:
			appts.Item(w, r)
		}
	})
	mux.HandleFunc("/api/v1/slots", appts.Slots)
	mux.HandleFunc("/api/v1/slots/dates", appts.SlotDates)
	mux.HandleFunc("/api/v1/auth/login", admin.Login)
}
