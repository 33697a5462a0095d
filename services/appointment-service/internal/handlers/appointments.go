package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/turnero-app/turnero/services/appointment-service/internal/booking"
	"github.com/turnero-app/turnero/services/appointment-service/internal/model"
	"github.com/turnero-app/turnero/services/appointment-service/internal/stats"
	"github.com/turnero-app/turnero/services/appointment-service/internal/storage"
)

type AppointmentHandler struct {
	svc    *booking.Service
	logger *slog.Logger
}

func NewAppointmentHandler(svc *booking.Service, logger *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{svc: svc, logger: logger}
}

type createAppointmentRequest struct {
	ClientName  string `json:"clientName"`
	Reason      string `json:"reason"`
	DesiredTime string `json:"desiredTime"`
	Notes       string `json:"notes"`
}

type updateAppointmentRequest struct {
	ClientName  *string `json:"clientName"`
	Reason      *string `json:"reason"`
	DesiredTime *string `json:"desiredTime"`
	Status      *string `json:"status"`
	Notes       *string `json:"notes"`
}

type appointmentItem struct {
	ID          string `json:"id"`
	ClientName  string `json:"clientName"`
	Reason      string `json:"reason"`
	DesiredTime string `json:"desiredTime"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	CompletedAt string `json:"completedAt,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

type paginationInfo struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type appointmentPage struct {
	Data       []appointmentItem `json:"data"`
	Pagination paginationInfo    `json:"pagination"`
}

func toAppointmentItem(appt model.Appointment) appointmentItem {
	item := appointmentItem{
		ID:          appt.ID,
		ClientName:  appt.ClientName,
		Reason:      appt.Reason,
		DesiredTime: appt.DesiredTime,
		Status:      string(appt.Status),
		CreatedAt:   appt.CreatedAt.UTC().Format(time.RFC3339),
		Notes:       appt.Notes,
	}
	if appt.CompletedAt != nil {
		item.CompletedAt = appt.CompletedAt.UTC().Format(time.RFC3339)
	}
	return item
}

// Collection serves /api/v1/appointments: list with query parameters on GET,
// create on POST.
func (h *AppointmentHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
	}
}

func (h *AppointmentHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := booking.QueryParams{
		Status:    strings.TrimSpace(q.Get("status")),
		Search:    strings.TrimSpace(q.Get("search")),
		SortBy:    strings.TrimSpace(q.Get("sortBy")),
		SortOrder: strings.TrimSpace(q.Get("sortOrder")),
	}
	if raw := strings.TrimSpace(q.Get("page")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			params.Page = n
		}
	}
	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			params.Limit = n
		}
	}

	page, err := h.svc.Query(r.Context(), params)
	if err != nil {
		h.respondError(w, err)
		return
	}

	items := make([]appointmentItem, 0, len(page.Items))
	for _, appt := range page.Items {
		items = append(items, toAppointmentItem(appt))
	}
	writeSuccess(w, http.StatusOK, appointmentPage{
		Data: items,
		Pagination: paginationInfo{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      page.Total,
			TotalPages: page.TotalPages,
		},
	}, "")
}

func (h *AppointmentHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createAppointmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body", err.Error())
		return
	}

	appt, err := h.svc.Create(r.Context(), booking.CreateInput{
		ClientName:  req.ClientName,
		Reason:      req.Reason,
		DesiredTime: req.DesiredTime,
		Notes:       req.Notes,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, toAppointmentItem(appt), "appointment created")
}

// Item serves /api/v1/appointments/{id}: get, update, delete.
func (h *AppointmentHandler) Item(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/appointments/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "appointment not found", "")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
	}
}

func (h *AppointmentHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	appt, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toAppointmentItem(appt), "")
}

func (h *AppointmentHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var req updateAppointmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body", err.Error())
		return
	}

	appt, err := h.svc.Update(r.Context(), id, booking.UpdateInput{
		ClientName:  req.ClientName,
		Reason:      req.Reason,
		DesiredTime: req.DesiredTime,
		Status:      req.Status,
		Notes:       req.Notes,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toAppointmentItem(appt), "appointment updated")
}

func (h *AppointmentHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil, "appointment deleted")
}

type statusCounts struct {
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

type hourBucketItem struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}

type dayBucketItem struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type statsResponse struct {
	Total           int              `json:"total"`
	TotalToday      int              `json:"totalToday"`
	Pending         int              `json:"pending"`
	Completed       int              `json:"completed"`
	Cancelled       int              `json:"cancelled"`
	ByStatus        statusCounts     `json:"byStatus"`
	AverageWaitTime int              `json:"averageWaitTime"`
	CompletionRate  float64          `json:"completionRate"`
	MonthlyGrowth   float64          `json:"monthlyGrowth"`
	HourlyData      []hourBucketItem `json:"hourlyData"`
	WeeklyTrend     []dayBucketItem  `json:"weeklyTrend"`
	DailyTrend      []dayBucketItem  `json:"dailyTrend"`
}

func toStatsResponse(st stats.Stats) statsResponse {
	resp := statsResponse{
		Total:           st.Total,
		TotalToday:      st.TotalToday,
		Pending:         st.Pending,
		Completed:       st.Completed,
		Cancelled:       st.Cancelled,
		ByStatus:        statusCounts{Pending: st.Pending, Completed: st.Completed, Cancelled: st.Cancelled},
		AverageWaitTime: st.AverageWaitTime,
		CompletionRate:  st.CompletionRate,
		MonthlyGrowth:   st.MonthlyGrowth,
		HourlyData:      make([]hourBucketItem, 0, len(st.HourlyData)),
		WeeklyTrend:     make([]dayBucketItem, 0, len(st.WeeklyTrend)),
		DailyTrend:      make([]dayBucketItem, 0, len(st.DailyTrend)),
	}
	for _, b := range st.HourlyData {
		resp.HourlyData = append(resp.HourlyData, hourBucketItem{Hour: fmt.Sprintf("%d:00", b.Hour), Count: b.Count})
	}
	for _, b := range st.WeeklyTrend {
		resp.WeeklyTrend = append(resp.WeeklyTrend, dayBucketItem{Date: b.Date, Count: b.Count})
	}
	for _, b := range st.DailyTrend {
		resp.DailyTrend = append(resp.DailyTrend, dayBucketItem{Date: b.Date, Count: b.Count})
	}
	return resp
}

// Stats serves /api/v1/appointments/stats.
func (h *AppointmentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}
	st, err := h.svc.Stats(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toStatsResponse(st), "")
}

func (h *AppointmentHandler) respondError(w http.ResponseWriter, err error) {
	var verr *booking.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, "validation failed", verr.Error())
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "appointment not found", "")
	default:
		h.logger.Error("request failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("malformed request body")
	}
	return nil
}
