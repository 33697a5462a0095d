package booking

import (
	"context"
	"sort"
	"strings"

	"github.com/turnero-app/turnero/services/appointment-service/internal/model"
)

const (
	StatusFilterAll = "all"

	SortByTime    = "time"
	SortByName    = "name"
	SortByStatus  = "status"
	SortByCreated = "created"

	defaultPageSize = 10
)

// QueryParams describes a read over the collection: filter, then sort, then
// paginate. Zero values mean "all", created/desc, page 1, limit 10.
type QueryParams struct {
	Status    string
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

type Page struct {
	Items      []model.Appointment
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

func (s *Service) Query(ctx context.Context, params QueryParams) (Page, error) {
	appts, err := s.store.List(ctx)
	if err != nil {
		return Page{}, err
	}
	return applyQuery(appts, params), nil
}

func applyQuery(appts []model.Appointment, params QueryParams) Page {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = defaultPageSize
	}

	filtered := filterByStatus(appts, params.Status)
	filtered = filterBySearch(filtered, params.Search)

	sortAppointments(filtered, params.SortBy, params.SortOrder)

	total := len(filtered)
	totalPages := (total + params.Limit - 1) / params.Limit

	start := (params.Page - 1) * params.Limit
	if start > total {
		start = total
	}
	end := start + params.Limit
	if end > total {
		end = total
	}

	return Page{
		Items:      filtered[start:end],
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

func filterByStatus(appts []model.Appointment, status string) []model.Appointment {
	status = strings.TrimSpace(status)
	if status == "" || status == StatusFilterAll {
		return appts
	}
	out := make([]model.Appointment, 0, len(appts))
	for _, appt := range appts {
		if string(appt.Status) == status {
			out = append(out, appt)
		}
	}
	return out
}

func filterBySearch(appts []model.Appointment, search string) []model.Appointment {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return appts
	}
	out := make([]model.Appointment, 0, len(appts))
	for _, appt := range appts {
		if strings.Contains(strings.ToLower(appt.ClientName), search) ||
			strings.Contains(strings.ToLower(appt.Reason), search) ||
			strings.Contains(strings.ToLower(appt.Notes), search) {
			out = append(out, appt)
		}
	}
	return out
}

func sortAppointments(appts []model.Appointment, sortBy, sortOrder string) {
	desc := sortOrder != "asc"
	sort.SliceStable(appts, func(i, j int) bool {
		cmp := compareAppointments(appts[i], appts[j], sortBy)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func compareAppointments(a, b model.Appointment, sortBy string) int {
	switch sortBy {
	case SortByTime:
		// Normalized "HH:MM" strings order lexically == chronologically.
		return strings.Compare(a.DesiredTime, b.DesiredTime)
	case SortByName:
		return strings.Compare(strings.ToLower(a.ClientName), strings.ToLower(b.ClientName))
	case SortByStatus:
		return strings.Compare(string(a.Status), string(b.Status))
	default:
		// Unknown sort keys fall back to creation time.
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}
