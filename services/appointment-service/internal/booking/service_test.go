package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/turnero-app/turnero/services/appointment-service/internal/model"
	"github.com/turnero-app/turnero/services/appointment-service/internal/storage"
)

func newTestService() (*Service, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	svc := NewService(store, time.UTC)
	return svc, store
}

func strPtr(s string) *string { return &s }

func TestCreateSetsPendingAndTimestamps(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	before := time.Now()
	appt, err := svc.Create(ctx, CreateInput{
		ClientName:  "  Ana  ",
		Reason:      "Checkup",
		DesiredTime: "10:00",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if appt.ID == "" {
		t.Fatal("expected assigned id")
	}
	if appt.Status != model.StatusPending {
		t.Fatalf("status = %s, want pending", appt.Status)
	}
	if appt.CompletedAt != nil {
		t.Fatal("completedAt must be absent on creation")
	}
	if appt.ClientName != "Ana" {
		t.Fatalf("clientName = %q, want trimmed %q", appt.ClientName, "Ana")
	}
	if appt.CreatedAt.Before(before.Add(-time.Second)) || appt.CreatedAt.After(time.Now().Add(time.Second)) {
		t.Fatalf("createdAt %s not close to now", appt.CreatedAt)
	}
}

func TestCreateNormalizesDesiredTime(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	appt, err := svc.Create(ctx, CreateInput{
		ClientName:  "Ana",
		Reason:      "Checkup",
		DesiredTime: "2026-03-02T09:30:00Z",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if appt.DesiredTime != "09:30" {
		t.Fatalf("desiredTime = %q, want normalized %q", appt.DesiredTime, "09:30")
	}
}

func TestCreateValidation(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	cases := []struct {
		name  string
		in    CreateInput
		field string
	}{
		{"missing client name", CreateInput{Reason: "r", DesiredTime: "10:00"}, "clientName"},
		{"blank client name", CreateInput{ClientName: "   ", Reason: "r", DesiredTime: "10:00"}, "clientName"},
		{"missing reason", CreateInput{ClientName: "Ana", DesiredTime: "10:00"}, "reason"},
		{"missing desired time", CreateInput{ClientName: "Ana", Reason: "r"}, "desiredTime"},
		{"bad desired time", CreateInput{ClientName: "Ana", Reason: "r", DesiredTime: "later"}, "desiredTime"},
	}
	for _, tc := range cases {
		_, err := svc.Create(ctx, tc.in)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: err = %v, want ValidationError", tc.name, err)
		}
		if verr.Field != tc.field {
			t.Fatalf("%s: field = %q, want %q", tc.name, verr.Field, tc.field)
		}
	}

	// Failed validation must not touch the collection.
	appts, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(appts) != 0 {
		t.Fatalf("expected no records after failed creates, got %d", len(appts))
	}
}

func TestCreateAssignsFreshIDs(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	in := CreateInput{ClientName: "Ana", Reason: "Checkup", DesiredTime: "10:00"}
	a, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	b, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("repeated create reused id %q", a.ID)
	}
}

func TestUpdateToCompletedSetsCompletedAt(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	appt, err := svc.Create(ctx, CreateInput{ClientName: "Ana", Reason: "Checkup", DesiredTime: "10:00"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.Update(ctx, appt.ID, UpdateInput{Status: strPtr("completed")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Status != model.StatusCompleted {
		t.Fatalf("status = %s, want completed", updated.Status)
	}
	if updated.CompletedAt == nil {
		t.Fatal("completedAt must be set on transition to completed")
	}
	if updated.CompletedAt.Before(updated.CreatedAt) {
		t.Fatalf("completedAt %s before createdAt %s", updated.CompletedAt, updated.CreatedAt)
	}
}

func TestUpdateCompletedToCompletedKeepsTimestamp(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	appt, err := svc.Create(ctx, CreateInput{ClientName: "Ana", Reason: "Checkup", DesiredTime: "10:00"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	first, err := svc.Update(ctx, appt.ID, UpdateInput{Status: strPtr("completed")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	again, err := svc.Update(ctx, appt.ID, UpdateInput{Status: strPtr("completed"), Notes: strPtr("seen twice")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !again.CompletedAt.Equal(*first.CompletedAt) {
		t.Fatalf("completedAt changed on completed->completed: %s vs %s", again.CompletedAt, first.CompletedAt)
	}
	if again.Notes != "seen twice" {
		t.Fatalf("notes = %q, want %q", again.Notes, "seen twice")
	}
}

func TestUpdateWithoutStatusLeavesCompletedAtAlone(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	appt, err := svc.Create(ctx, CreateInput{ClientName: "Ana", Reason: "Checkup", DesiredTime: "10:00"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.Update(ctx, appt.ID, UpdateInput{Reason: strPtr("Follow-up")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.CompletedAt != nil {
		t.Fatal("completedAt must stay absent when status does not change")
	}
	if updated.Reason != "Follow-up" {
		t.Fatalf("reason = %q, want %q", updated.Reason, "Follow-up")
	}
	if updated.ClientName != "Ana" {
		t.Fatalf("untouched clientName changed: %q", updated.ClientName)
	}
}

func TestUpdateAllowsAnyStatusTransition(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	appt, err := svc.Create(ctx, CreateInput{ClientName: "Ana", Reason: "Checkup", DesiredTime: "10:00"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// completed -> pending is allowed; there is no transition guard.
	if _, err := svc.Update(ctx, appt.ID, UpdateInput{Status: strPtr("completed")}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	back, err := svc.Update(ctx, appt.ID, UpdateInput{Status: strPtr("pending")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if back.Status != model.StatusPending {
		t.Fatalf("status = %s, want pending", back.Status)
	}
}

func TestUpdateValidatesSuppliedFields(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	appt, err := svc.Create(ctx, CreateInput{ClientName: "Ana", Reason: "Checkup", DesiredTime: "10:00"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var verr *ValidationError
	if _, err := svc.Update(ctx, appt.ID, UpdateInput{DesiredTime: strPtr("nope")}); !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError for bad desiredTime", err)
	}
	if _, err := svc.Update(ctx, appt.ID, UpdateInput{Status: strPtr("archived")}); !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError for bad status", err)
	}
	if _, err := svc.Update(ctx, appt.ID, UpdateInput{ClientName: strPtr("  ")}); !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError for blank clientName", err)
	}
}

func TestUpdateAndDeleteNotFound(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Update(ctx, "missing", UpdateInput{Status: strPtr("completed")}); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Update err = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Delete err = %v, want ErrNotFound", err)
	}
	// Repeating the failed call fails the same way.
	if err := svc.Delete(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("repeated Delete err = %v, want ErrNotFound", err)
	}
}

func TestDeleteRemovesRecord(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	appt, err := svc.Create(ctx, CreateInput{ClientName: "Ana", Reason: "Checkup", DesiredTime: "10:00"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := svc.Delete(ctx, appt.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	appts, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(appts) != 0 {
		t.Fatalf("expected empty collection, got %d", len(appts))
	}
}
