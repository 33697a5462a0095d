package model

import (
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"pending", "completed", "cancelled", " pending "} {
		if _, err := ParseStatus(raw); err != nil {
			t.Fatalf("ParseStatus(%q) failed: %v", raw, err)
		}
	}
	for _, raw := range []string{"", "done", "PENDING ok", "canceled?"} {
		if _, err := ParseStatus(raw); err == nil {
			t.Fatalf("ParseStatus(%q) should fail", raw)
		}
	}
}

func TestParseDesiredTime(t *testing.T) {
	cases := []struct {
		raw  string
		want Clock
	}{
		{"10:00", Clock{10, 0}},
		{"08:30", Clock{8, 30}},
		{"18:00:00", Clock{18, 0}},
		{"2026-03-02T14:30", Clock{14, 30}},
		{"2026-03-02T09:00:00Z", Clock{9, 0}},
	}
	for _, tc := range cases {
		got, err := ParseDesiredTime(tc.raw)
		if err != nil {
			t.Fatalf("ParseDesiredTime(%q) failed: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseDesiredTime(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}

	for _, raw := range []string{"", "banana", "25:00", "10:70", "10h30"} {
		if _, err := ParseDesiredTime(raw); err == nil {
			t.Fatalf("ParseDesiredTime(%q) should fail", raw)
		}
	}
}

func TestDesiredInstant(t *testing.T) {
	created := time.Date(2026, 3, 2, 9, 12, 0, 0, time.UTC)
	appt := Appointment{DesiredTime: "10:30", CreatedAt: created}

	instant, ok := appt.DesiredInstant()
	if !ok {
		t.Fatal("expected DesiredInstant to succeed")
	}
	want := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)
	if !instant.Equal(want) {
		t.Fatalf("DesiredInstant = %s, want %s", instant, want)
	}

	appt.DesiredTime = "not a time"
	if _, ok := appt.DesiredInstant(); ok {
		t.Fatal("expected DesiredInstant to fail for unparseable value")
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 3, 2, 23, 59, 0, 0, time.UTC)
	b := time.Date(2026, 3, 2, 0, 0, 1, 0, time.UTC)
	if !SameDay(a, b) {
		t.Fatal("expected same calendar day")
	}
	if SameDay(a, b.AddDate(0, 0, 1)) {
		t.Fatal("expected different calendar days")
	}
}
