package model

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(raw string) (Status, error) {
	switch Status(strings.TrimSpace(raw)) {
	case StatusPending:
		return StatusPending, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusCancelled:
		return StatusCancelled, nil
	}
	return "", fmt.Errorf("unknown status %q", raw)
}

// Clock is a time of day on the booking grid, without a date.
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On combines the clock with the calendar date of t, in t's location.
func (c Clock) On(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), c.Hour, c.Minute, 0, 0, t.Location())
}

var desiredTimeLayouts = []string{
	"15:04",
	"15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

// ParseDesiredTime normalizes a requested appointment time. Clients send either
// a bare clock time ("10:00") or a full timestamp; only the clock component is
// kept. The error marks input that must be rejected at the validation boundary.
func ParseDesiredTime(raw string) (Clock, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Clock{}, fmt.Errorf("empty desired time")
	}
	for _, layout := range desiredTimeLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
	}
	return Clock{}, fmt.Errorf("invalid time format %q", raw)
}

// Appointment is the persisted booking record. DesiredTime holds the
// normalized "HH:MM" form produced by ParseDesiredTime; it is never re-parsed
// for validation downstream.
type Appointment struct {
	ID          string
	ClientName  string
	Reason      string
	DesiredTime string
	Status      Status
	CreatedAt   time.Time
	CompletedAt *time.Time
	Notes       string
}

// DesiredClock reports the appointment's clock time. ok is false for legacy
// records whose stored value does not parse; those records are skipped by the
// statistics and availability paths.
func (a Appointment) DesiredClock() (Clock, bool) {
	c, err := ParseDesiredTime(a.DesiredTime)
	if err != nil {
		return Clock{}, false
	}
	return c, true
}

// DesiredInstant is the requested time on the day the booking was created,
// in CreatedAt's location.
func (a Appointment) DesiredInstant() (time.Time, bool) {
	c, ok := a.DesiredClock()
	if !ok {
		return time.Time{}, false
	}
	return c.On(a.CreatedAt), true
}

// SameDay reports whether two instants fall on the same calendar day when
// observed in b's location.
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
