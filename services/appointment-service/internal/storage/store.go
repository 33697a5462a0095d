package storage

import (
	"context"
	"errors"
	"time"

	"github.com/turnero-app/turnero/services/appointment-service/internal/model"
)

// ErrNotFound is returned when the referenced appointment does not exist.
// Callers distinguish it from infrastructure failures with errors.Is.
var ErrNotFound = errors.New("appointment not found")

// Fields is a partial update: nil members are left untouched. CompletedAt is
// only ever set (never cleared) and only by the booking service when a record
// transitions into the completed status.
type Fields struct {
	ClientName  *string
	Reason      *string
	DesiredTime *string
	Status      *model.Status
	Notes       *string
	CompletedAt *time.Time
}

// Store is the persistence boundary for appointment records. Implementations
// must treat every call as fallible and surface failures unchanged; the core
// never retries or masks them.
type Store interface {
	List(ctx context.Context) ([]model.Appointment, error)
	GetByID(ctx context.Context, id string) (model.Appointment, error)
	Insert(ctx context.Context, appt model.Appointment) (model.Appointment, error)
	UpdateByID(ctx context.Context, id string, fields Fields) (model.Appointment, error)
	DeleteByID(ctx context.Context, id string) error
}
