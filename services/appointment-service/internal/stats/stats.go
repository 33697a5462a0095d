package stats

import (
	"math"
	"time"

	"github.com/turnero-app/turnero/services/appointment-service/internal/model"
)

const (
	// Booking grid boundaries, hours inclusive.
	FirstHour = 8
	LastHour  = 18

	weeklyTrendDays = 7
	dailyTrendDays  = 30
)

type HourBucket struct {
	Hour  int
	Count int
}

type DayBucket struct {
	Date  string // YYYY-MM-DD
	Count int
}

// Stats are the dashboard metrics over the full collection. Status counts are
// collection-wide; TotalToday is the only today-scoped figure.
type Stats struct {
	Total           int
	TotalToday      int
	Pending         int
	Completed       int
	Cancelled       int
	AverageWaitTime int // minutes, rounded
	CompletionRate  float64
	MonthlyGrowth   float64
	HourlyData      []HourBucket
	WeeklyTrend     []DayBucket
	DailyTrend      []DayBucket
}

// Compute derives all metrics over the collection. Calendar-day comparisons use
// now's location, so callers pass now in the business timezone.
func Compute(appts []model.Appointment, now time.Time) Stats {
	st := Stats{
		Total:       len(appts),
		HourlyData:  make([]HourBucket, 0, LastHour-FirstHour+1),
		WeeklyTrend: trend(appts, now, weeklyTrendDays),
		DailyTrend:  trend(appts, now, dailyTrendDays),
	}

	var waitTotalMinutes float64
	var waitEligible int
	for _, appt := range appts {
		if model.SameDay(appt.CreatedAt, now) {
			st.TotalToday++
		}
		switch appt.Status {
		case model.StatusPending:
			st.Pending++
		case model.StatusCompleted:
			st.Completed++
		case model.StatusCancelled:
			st.Cancelled++
		}

		// Wait time is how far ahead of the request the desired slot sits, on
		// the day the booking was made. Unparseable times are excluded from
		// both numerator and denominator.
		if desired, ok := appt.DesiredInstant(); ok {
			wait := desired.Sub(appt.CreatedAt)
			if wait < 0 {
				wait = 0
			}
			waitTotalMinutes += wait.Minutes()
			waitEligible++
		}
	}

	if waitEligible > 0 {
		st.AverageWaitTime = int(math.Round(waitTotalMinutes / float64(waitEligible)))
	}
	if st.Total > 0 {
		st.CompletionRate = float64(st.Completed) / float64(st.Total) * 100
	}

	for hour := FirstHour; hour <= LastHour; hour++ {
		count := 0
		for _, appt := range appts {
			if clock, ok := appt.DesiredClock(); ok && clock.Hour == hour {
				count++
			}
		}
		st.HourlyData = append(st.HourlyData, HourBucket{Hour: hour, Count: count})
	}

	st.MonthlyGrowth = monthlyGrowth(appts, now)
	return st
}

func trend(appts []model.Appointment, now time.Time, days int) []DayBucket {
	buckets := make([]DayBucket, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		count := 0
		for _, appt := range appts {
			if model.SameDay(appt.CreatedAt, day) {
				count++
			}
		}
		buckets = append(buckets, DayBucket{
			Date:  day.Format("2006-01-02"),
			Count: count,
		})
	}
	return buckets
}

func monthlyGrowth(appts []model.Appointment, now time.Time) float64 {
	thisMonthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := thisMonthStart.AddDate(0, -1, 0)

	var thisMonth, lastMonth int
	for _, appt := range appts {
		created := appt.CreatedAt.In(now.Location())
		switch {
		case !created.Before(thisMonthStart):
			thisMonth++
		case !created.Before(lastMonthStart):
			lastMonth++
		}
	}
	if lastMonth == 0 {
		return 0
	}
	return float64(thisMonth-lastMonth) / float64(lastMonth) * 100
}
