package booking

import (
	"context"
	"strings"
	"time"

	"github.com/turnero-app/turnero/services/appointment-service/internal/availability"
	"github.com/turnero-app/turnero/services/appointment-service/internal/model"
	"github.com/turnero-app/turnero/services/appointment-service/internal/stats"
	"github.com/turnero-app/turnero/services/appointment-service/internal/storage"
)

// Service owns the appointment lifecycle: it validates input, applies
// create/update/delete against the injected store, and serves the read paths
// (query, statistics, slot availability) over a fresh snapshot per call.
type Service struct {
	store storage.Store
	now   func() time.Time
}

func NewService(store storage.Store, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		store: store,
		now:   func() time.Time { return time.Now().In(loc) },
	}
}

type CreateInput struct {
	ClientName  string
	Reason      string
	DesiredTime string
	Notes       string
}

// Create validates the input and appends a new pending record. The stored
// desired time is the normalized clock form, regardless of whether the client
// sent "10:00" or a full timestamp.
func (s *Service) Create(ctx context.Context, in CreateInput) (model.Appointment, error) {
	clientName := strings.TrimSpace(in.ClientName)
	reason := strings.TrimSpace(in.Reason)
	if clientName == "" {
		return model.Appointment{}, invalid("clientName", "is required")
	}
	if reason == "" {
		return model.Appointment{}, invalid("reason", "is required")
	}
	clock, err := model.ParseDesiredTime(in.DesiredTime)
	if err != nil {
		return model.Appointment{}, invalid("desiredTime", "invalid time format")
	}

	return s.store.Insert(ctx, model.Appointment{
		ClientName:  clientName,
		Reason:      reason,
		DesiredTime: clock.String(),
		Status:      model.StatusPending,
		CreatedAt:   s.now(),
		Notes:       strings.TrimSpace(in.Notes),
	})
}

func (s *Service) Get(ctx context.Context, id string) (model.Appointment, error) {
	return s.store.GetByID(ctx, id)
}

// UpdateInput is a partial update; nil members leave the field untouched.
type UpdateInput struct {
	ClientName  *string
	Reason      *string
	DesiredTime *string
	Status      *string
	Notes       *string
}

// Update applies the supplied fields to an existing record. Transitions are
// unrestricted between statuses; the only derived field is CompletedAt, set
// once when a record moves into completed from a non-completed state.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (model.Appointment, error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return model.Appointment{}, err
	}

	var fields storage.Fields
	if in.ClientName != nil {
		clientName := strings.TrimSpace(*in.ClientName)
		if clientName == "" {
			return model.Appointment{}, invalid("clientName", "must not be empty")
		}
		fields.ClientName = &clientName
	}
	if in.Reason != nil {
		reason := strings.TrimSpace(*in.Reason)
		if reason == "" {
			return model.Appointment{}, invalid("reason", "must not be empty")
		}
		fields.Reason = &reason
	}
	if in.DesiredTime != nil {
		clock, err := model.ParseDesiredTime(*in.DesiredTime)
		if err != nil {
			return model.Appointment{}, invalid("desiredTime", "invalid time format")
		}
		normalized := clock.String()
		fields.DesiredTime = &normalized
	}
	if in.Status != nil {
		status, err := model.ParseStatus(*in.Status)
		if err != nil {
			return model.Appointment{}, invalid("status", "must be pending, completed or cancelled")
		}
		fields.Status = &status
		if status == model.StatusCompleted && existing.Status != model.StatusCompleted {
			completedAt := s.now()
			fields.CompletedAt = &completedAt
		}
	}
	if in.Notes != nil {
		notes := strings.TrimSpace(*in.Notes)
		fields.Notes = &notes
	}

	return s.store.UpdateByID(ctx, id, fields)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.DeleteByID(ctx, id)
}

// Stats computes the dashboard metrics over the full current collection.
func (s *Service) Stats(ctx context.Context) (stats.Stats, error) {
	appts, err := s.store.List(ctx)
	if err != nil {
		return stats.Stats{}, err
	}
	return stats.Compute(appts, s.now()), nil
}

// Slots reports the bookable grid for one calendar date.
func (s *Service) Slots(ctx context.Context, date time.Time) ([]availability.Slot, error) {
	appts, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return availability.Slots(appts, date), nil
}

// SlotDates reports the selectable booking dates starting today.
func (s *Service) SlotDates() []time.Time {
	return availability.Dates(s.now())
}
