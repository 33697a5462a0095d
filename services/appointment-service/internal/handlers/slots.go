package handlers

import (
	"net/http"
	"strings"
	"time"
)

type slotItem struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// Slots serves /api/v1/slots?date=YYYY-MM-DD with the bookable grid for that
// date.
func (h *AppointmentHandler) Slots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}

	dateStr := strings.TrimSpace(r.URL.Query().Get("date"))
	if dateStr == "" {
		writeError(w, http.StatusBadRequest, "validation failed", "date is required")
		return
	}
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", "date must be YYYY-MM-DD")
		return
	}

	slots, err := h.svc.Slots(r.Context(), date)
	if err != nil {
		h.respondError(w, err)
		return
	}

	items := make([]slotItem, 0, len(slots))
	for _, slot := range slots {
		items = append(items, slotItem{Time: slot.Time.String(), Available: slot.Available})
	}
	writeSuccess(w, http.StatusOK, items, "")
}

// SlotDates serves /api/v1/slots/dates: the selectable booking dates over the
// coming week, weekends excluded.
func (h *AppointmentHandler) SlotDates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}

	dates := h.svc.SlotDates()
	items := make([]string, 0, len(dates))
	for _, d := range dates {
		items = append(items, d.Format("2006-01-02"))
	}
	writeSuccess(w, http.StatusOK, items, "")
}
