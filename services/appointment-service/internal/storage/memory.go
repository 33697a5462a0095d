package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/turnero-app/turnero/services/appointment-service/internal/model"
)

// MemoryStore keeps appointments in process memory. It backs tests and the
// dev mode of the service; a single instance is constructed and injected, the
// collection is never package-level state.
type MemoryStore struct {
	mu    sync.Mutex
	appts []model.Appointment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) List(_ context.Context) ([]model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Appointment, len(s.appts))
	copy(out, s.appts)
	return out, nil
}

func (s *MemoryStore) GetByID(_ context.Context, id string) (model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, appt := range s.appts {
		if appt.ID == id {
			return appt, nil
		}
	}
	return model.Appointment{}, ErrNotFound
}

func (s *MemoryStore) Insert(_ context.Context, appt model.Appointment) (model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if appt.ID == "" {
		appt.ID = uuid.NewString()
	}
	s.appts = append(s.appts, appt)
	return appt, nil
}

func (s *MemoryStore) UpdateByID(_ context.Context, id string, fields Fields) (model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appts {
		if s.appts[i].ID != id {
			continue
		}
		appt := &s.appts[i]
		if fields.ClientName != nil {
			appt.ClientName = *fields.ClientName
		}
		if fields.Reason != nil {
			appt.Reason = *fields.Reason
		}
		if fields.DesiredTime != nil {
			appt.DesiredTime = *fields.DesiredTime
		}
		if fields.Status != nil {
			appt.Status = *fields.Status
		}
		if fields.Notes != nil {
			appt.Notes = *fields.Notes
		}
		if fields.CompletedAt != nil {
			at := *fields.CompletedAt
			appt.CompletedAt = &at
		}
		return *appt, nil
	}
	return model.Appointment{}, ErrNotFound
}

func (s *MemoryStore) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appts {
		if s.appts[i].ID == id {
			s.appts = append(s.appts[:i], s.appts[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

var _ Store = (*MemoryStore)(nil)
