package stats

import (
	"testing"
	"time"

	"github.com/turnero-app/turnero/services/appointment-service/internal/model"
)

var now = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func appt(status model.Status, desiredTime string, createdAt time.Time) model.Appointment {
	return model.Appointment{
		ClientName:  "Ana",
		Reason:      "Checkup",
		DesiredTime: desiredTime,
		Status:      status,
		CreatedAt:   createdAt,
	}
}

func TestComputeEmptyCollection(t *testing.T) {
	st := Compute(nil, now)
	if st.Total != 0 || st.TotalToday != 0 || st.Pending != 0 || st.Completed != 0 || st.Cancelled != 0 {
		t.Fatalf("expected zero counts, got %+v", st)
	}
	if st.AverageWaitTime != 0 {
		t.Fatalf("AverageWaitTime = %d, want 0", st.AverageWaitTime)
	}
	if st.CompletionRate != 0 {
		t.Fatalf("CompletionRate = %f, want 0", st.CompletionRate)
	}
	if st.MonthlyGrowth != 0 {
		t.Fatalf("MonthlyGrowth = %f, want 0 (prior month empty)", st.MonthlyGrowth)
	}
	if len(st.HourlyData) != 11 {
		t.Fatalf("expected 11 hourly buckets, got %d", len(st.HourlyData))
	}
	if len(st.WeeklyTrend) != 7 || len(st.DailyTrend) != 30 {
		t.Fatalf("trend lengths = %d/%d, want 7/30", len(st.WeeklyTrend), len(st.DailyTrend))
	}
}

func TestComputeStatusCountsSumToTotal(t *testing.T) {
	appts := []model.Appointment{
		appt(model.StatusPending, "09:00", now.Add(-2*time.Hour)),
		appt(model.StatusPending, "10:00", now.AddDate(0, 0, -3)),
		appt(model.StatusCompleted, "11:00", now.AddDate(0, 0, -1)),
		appt(model.StatusCancelled, "12:00", now.AddDate(0, 0, -10)),
	}
	st := Compute(appts, now)

	if st.Total != 4 {
		t.Fatalf("Total = %d, want 4", st.Total)
	}
	if st.Pending+st.Completed+st.Cancelled != st.Total {
		t.Fatalf("status counts %d+%d+%d do not sum to total %d", st.Pending, st.Completed, st.Cancelled, st.Total)
	}
	if st.TotalToday != 1 {
		t.Fatalf("TotalToday = %d, want 1", st.TotalToday)
	}
	if st.CompletionRate < 0 || st.CompletionRate > 100 {
		t.Fatalf("CompletionRate out of range: %f", st.CompletionRate)
	}
	if st.CompletionRate != 25 {
		t.Fatalf("CompletionRate = %f, want 25", st.CompletionRate)
	}
}

func TestComputeAverageWaitTime(t *testing.T) {
	created := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	appts := []model.Appointment{
		// Requested 10:00, created 09:00: 60 minutes of wait.
		appt(model.StatusPending, "10:00", created),
		// Requested 09:30, created 09:00: 30 minutes.
		appt(model.StatusPending, "09:30", created),
		// Requested before creation clamps to zero.
		appt(model.StatusPending, "08:00", created),
		// Unparseable: excluded from numerator and denominator.
		appt(model.StatusPending, "whenever", created),
	}
	st := Compute(appts, now)

	if st.AverageWaitTime != 30 {
		t.Fatalf("AverageWaitTime = %d, want 30", st.AverageWaitTime)
	}
}

func TestComputeHourlyBuckets(t *testing.T) {
	appts := []model.Appointment{
		appt(model.StatusPending, "08:00", now),
		appt(model.StatusPending, "08:30", now),
		appt(model.StatusPending, "18:00", now),
	}
	st := Compute(appts, now)

	byHour := map[int]int{}
	for _, b := range st.HourlyData {
		byHour[b.Hour] = b.Count
	}
	if byHour[8] != 2 {
		t.Fatalf("hour 8 count = %d, want 2", byHour[8])
	}
	if byHour[18] != 1 {
		t.Fatalf("hour 18 count = %d, want 1", byHour[18])
	}
	if byHour[12] != 0 {
		t.Fatalf("hour 12 count = %d, want 0", byHour[12])
	}
}

func TestComputeTrends(t *testing.T) {
	appts := []model.Appointment{
		appt(model.StatusPending, "10:00", now),
		appt(model.StatusPending, "10:00", now.AddDate(0, 0, -1)),
		appt(model.StatusPending, "10:00", now.AddDate(0, 0, -1)),
		appt(model.StatusPending, "10:00", now.AddDate(0, 0, -29)),
		// Outside both windows.
		appt(model.StatusPending, "10:00", now.AddDate(0, 0, -40)),
	}
	st := Compute(appts, now)

	last := st.WeeklyTrend[len(st.WeeklyTrend)-1]
	if last.Date != "2026-03-02" || last.Count != 1 {
		t.Fatalf("weekly trend today = %+v, want 2026-03-02/1", last)
	}
	yesterday := st.WeeklyTrend[len(st.WeeklyTrend)-2]
	if yesterday.Count != 2 {
		t.Fatalf("weekly trend yesterday count = %d, want 2", yesterday.Count)
	}

	first := st.DailyTrend[0]
	if first.Date != "2026-02-01" || first.Count != 1 {
		t.Fatalf("daily trend first bucket = %+v, want 2026-02-01/1", first)
	}

	var weeklySum int
	for _, b := range st.WeeklyTrend {
		weeklySum += b.Count
	}
	if weeklySum != 3 {
		t.Fatalf("weekly trend sum = %d, want 3", weeklySum)
	}
}

func TestComputeMonthlyGrowth(t *testing.T) {
	appts := []model.Appointment{
		// This month: 3 records.
		appt(model.StatusPending, "10:00", now),
		appt(model.StatusPending, "10:00", now.AddDate(0, 0, -1)),
		appt(model.StatusPending, "10:00", time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)),
		// Last month: 2 records.
		appt(model.StatusPending, "10:00", time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)),
		appt(model.StatusPending, "10:00", time.Date(2026, 2, 20, 8, 0, 0, 0, time.UTC)),
		// Older: ignored.
		appt(model.StatusPending, "10:00", time.Date(2025, 12, 20, 8, 0, 0, 0, time.UTC)),
	}
	st := Compute(appts, now)

	if st.MonthlyGrowth != 50 {
		t.Fatalf("MonthlyGrowth = %f, want 50", st.MonthlyGrowth)
	}
}
