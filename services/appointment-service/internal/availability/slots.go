package availability

import (
	"time"

	"github.com/turnero-app/turnero/services/appointment-service/internal/model"
)

const (
	// Fixed booking grid: 30-minute slots from 08:00 to 18:00 inclusive.
	OpenHour    = 8
	CloseHour   = 18
	SlotMinutes = 30

	horizonDays = 7
)

type Slot struct {
	Time      model.Clock
	Available bool
}

// Grid returns the fixed slot template, ordered ascending. 21 slots.
func Grid() []model.Clock {
	var grid []model.Clock
	for hour := OpenHour; hour <= CloseHour; hour++ {
		grid = append(grid, model.Clock{Hour: hour})
		if hour < CloseHour {
			grid = append(grid, model.Clock{Hour: hour, Minute: SlotMinutes})
		}
	}
	return grid
}

// Slots reports the occupied/available state of every grid slot on the given
// date. A slot is taken when a non-cancelled appointment requests that clock
// time and was created on that calendar date; cancelled records free the slot
// again. The booking date is read from CreatedAt, matching how the product
// has always treated same-day walk-in requests.
func Slots(appts []model.Appointment, date time.Time) []Slot {
	taken := make(map[model.Clock]bool)
	for _, appt := range appts {
		if appt.Status == model.StatusCancelled {
			continue
		}
		if !model.SameDay(appt.CreatedAt, date) {
			continue
		}
		if clock, ok := appt.DesiredClock(); ok {
			taken[clock] = true
		}
	}

	grid := Grid()
	slots := make([]Slot, 0, len(grid))
	for _, clock := range grid {
		slots = append(slots, Slot{Time: clock, Available: !taken[clock]})
	}
	return slots
}

// Dates returns the selectable booking dates within the coming week,
// starting today and skipping weekends.
func Dates(now time.Time) []time.Time {
	var dates []time.Time
	for day := 0; day < horizonDays; day++ {
		d := now.AddDate(0, 0, day)
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		dates = append(dates, time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location()))
	}
	return dates
}
