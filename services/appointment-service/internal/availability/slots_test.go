package availability

import (
	"testing"
	"time"

	"github.com/turnero-app/turnero/services/appointment-service/internal/model"
)

func TestGridHas21Slots(t *testing.T) {
	grid := Grid()
	if len(grid) != 21 {
		t.Fatalf("expected 21 slots, got %d", len(grid))
	}
	if grid[0].String() != "08:00" {
		t.Fatalf("expected first slot 08:00, got %s", grid[0])
	}
	if grid[len(grid)-1].String() != "18:00" {
		t.Fatalf("expected last slot 18:00, got %s", grid[len(grid)-1])
	}
	for i := 1; i < len(grid); i++ {
		if grid[i].String() <= grid[i-1].String() {
			t.Fatalf("grid not ascending at %d: %s then %s", i, grid[i-1], grid[i])
		}
	}
}

func TestSlotsMarksBookedTimes(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // Monday
	appts := []model.Appointment{
		{DesiredTime: "10:00", Status: model.StatusPending, CreatedAt: date.Add(9 * time.Hour)},
		{DesiredTime: "14:30", Status: model.StatusCompleted, CreatedAt: date.Add(11 * time.Hour)},
	}

	slots := Slots(appts, date)
	for _, s := range slots {
		switch s.Time.String() {
		case "10:00", "14:30":
			if s.Available {
				t.Fatalf("slot %s should be taken", s.Time)
			}
		default:
			if !s.Available {
				t.Fatalf("slot %s should be available", s.Time)
			}
		}
	}
}

func TestSlotsCancelledFreesSlot(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	appts := []model.Appointment{
		{DesiredTime: "10:00", Status: model.StatusCancelled, CreatedAt: date.Add(9 * time.Hour)},
	}

	for _, s := range Slots(appts, date) {
		if !s.Available {
			t.Fatalf("slot %s should be available when only a cancelled booking holds it", s.Time)
		}
	}
}

func TestSlotsIgnoresOtherDays(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	appts := []model.Appointment{
		{DesiredTime: "10:00", Status: model.StatusPending, CreatedAt: date.AddDate(0, 0, -1).Add(9 * time.Hour)},
	}

	for _, s := range Slots(appts, date) {
		if !s.Available {
			t.Fatalf("slot %s should be available, booking was made another day", s.Time)
		}
	}
}

func TestDatesSkipsWeekends(t *testing.T) {
	// Friday: the 7-day horizon covers Fri..Thu, so Sat+Sun drop out.
	now := time.Date(2026, 3, 6, 10, 0, 0, 0, time.UTC)
	dates := Dates(now)
	if len(dates) != 5 {
		t.Fatalf("expected 5 weekdays, got %d", len(dates))
	}
	for _, d := range dates {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			t.Fatalf("unexpected weekend date %s", d.Format("2006-01-02"))
		}
	}
	if !dates[0].Equal(time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected horizon to start today, got %s", dates[0])
	}
}
