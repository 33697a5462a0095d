package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/turnero-app/turnero/libs/db"
	"github.com/turnero-app/turnero/services/appointment-service/internal/model"
	"github.com/turnero-app/turnero/services/appointment-service/internal/outbox"
)

const apptColumns = `id, client_name, reason, desired_time, status, created_at, completed_at, COALESCE(notes, '')`

// PostgresStore persists appointments in Postgres. Every mutation writes a
// domain event to the outbox table inside the same transaction.
type PostgresStore struct {
	pool   *db.Pool
	outbox *outbox.Repository
}

func NewPostgresStore(pool *db.Pool, outboxRepo *outbox.Repository) *PostgresStore {
	return &PostgresStore{pool: pool, outbox: outboxRepo}
}

func (s *PostgresStore) List(ctx context.Context) ([]model.Appointment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+apptColumns+`
		FROM appointments
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []model.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, appt)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return appts, nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id string) (model.Appointment, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+apptColumns+`
		FROM appointments
		WHERE id = $1
	`, id)
	appt, err := scanAppointment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Appointment{}, ErrNotFound
	}
	if err != nil {
		return model.Appointment{}, err
	}
	return appt, nil
}

func (s *PostgresStore) Insert(ctx context.Context, appt model.Appointment) (model.Appointment, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return model.Appointment{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO appointments (client_name, reason, desired_time, status, created_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, appt.ClientName, appt.Reason, appt.DesiredTime, appt.Status, appt.CreatedAt, appt.Notes).Scan(&appt.ID)
	if err != nil {
		return model.Appointment{}, err
	}

	if err := s.writeEvent(ctx, tx, outbox.EventAppointmentCreated, appt); err != nil {
		return model.Appointment{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return model.Appointment{}, err
	}
	return appt, nil
}

func (s *PostgresStore) UpdateByID(ctx context.Context, id string, fields Fields) (model.Appointment, error) {
	sets, args := buildUpdate(fields)
	if len(sets) == 0 {
		// Nothing to change; return the current row so callers still get the record.
		return s.GetByID(ctx, id)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return model.Appointment{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	args = append(args, id)
	row := tx.QueryRow(ctx, fmt.Sprintf(`
		UPDATE appointments
		SET %s
		WHERE id = $%d
		RETURNING `+apptColumns,
		strings.Join(sets, ", "), len(args)), args...)

	appt, err := scanAppointment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Appointment{}, ErrNotFound
	}
	if err != nil {
		return model.Appointment{}, err
	}

	if err := s.writeEvent(ctx, tx, outbox.EventAppointmentUpdated, appt); err != nil {
		return model.Appointment{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return model.Appointment{}, err
	}
	return appt, nil
}

func (s *PostgresStore) DeleteByID(ctx context.Context, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		DELETE FROM appointments
		WHERE id = $1
		RETURNING `+apptColumns, id)

	appt, err := scanAppointment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if err := s.writeEvent(ctx, tx, outbox.EventAppointmentDeleted, appt); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) writeEvent(ctx context.Context, tx pgx.Tx, eventType string, appt model.Appointment) error {
	payload := map[string]any{
		"appointment_id": appt.ID,
		"client_name":    appt.ClientName,
		"reason":         appt.Reason,
		"desired_time":   appt.DesiredTime,
		"status":         string(appt.Status),
		"created_at":     appt.CreatedAt.UTC().Format(time.RFC3339),
	}
	if appt.CompletedAt != nil {
		payload["completed_at"] = appt.CompletedAt.UTC().Format(time.RFC3339)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.outbox.Insert(ctx, tx, outbox.Event{
		AggregateType: "appointment",
		AggregateID:   appt.ID,
		EventType:     eventType,
		Payload:       body,
	})
}

func buildUpdate(fields Fields) ([]string, []any) {
	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if fields.ClientName != nil {
		add("client_name", *fields.ClientName)
	}
	if fields.Reason != nil {
		add("reason", *fields.Reason)
	}
	if fields.DesiredTime != nil {
		add("desired_time", *fields.DesiredTime)
	}
	if fields.Status != nil {
		add("status", *fields.Status)
	}
	if fields.Notes != nil {
		add("notes", *fields.Notes)
	}
	if fields.CompletedAt != nil {
		add("completed_at", *fields.CompletedAt)
	}
	return sets, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner) (model.Appointment, error) {
	var appt model.Appointment
	var completedAt *time.Time
	err := row.Scan(
		&appt.ID,
		&appt.ClientName,
		&appt.Reason,
		&appt.DesiredTime,
		&appt.Status,
		&appt.CreatedAt,
		&completedAt,
		&appt.Notes,
	)
	if err != nil {
		return model.Appointment{}, err
	}
	appt.CompletedAt = completedAt
	return appt, nil
}

var _ Store = (*PostgresStore)(nil)
