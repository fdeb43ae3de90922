package services

import (
	"context"
	"testing"

	"github.com/khunmostz/Repair-Management-System/internal/models"
	"github.com/khunmostz/Repair-Management-System/internal/repositories"
)

type fakeRequestStore struct {
	requests map[int]*models.RepairRequest
	nextID   int
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{requests: map[int]*models.RepairRequest{}, nextID: 1}
}

func (f *fakeRequestStore) Create(ctx context.Context, r *models.RepairRequest) error {
	r.ID = f.nextID
	f.nextID++
	clone := *r
	f.requests[r.ID] = &clone
	return nil
}

func (f *fakeRequestStore) Get(ctx context.Context, id int) (*models.RepairRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *r
	return &clone, nil
}

func (f *fakeRequestStore) List(ctx context.Context) ([]models.RepairRequest, error) {
	out := make([]models.RepairRequest, 0, len(f.requests))
	for _, r := range f.requests {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRequestStore) Update(ctx context.Context, r *models.RepairRequest) error {
	if _, ok := f.requests[r.ID]; !ok {
		return repositories.ErrNotFound
	}
	clone := *r
	f.requests[r.ID] = &clone
	return nil
}

func (f *fakeRequestStore) Delete(ctx context.Context, id int) error {
	if _, ok := f.requests[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.requests, id)
	return nil
}

func ptr[T any](v T) *T { return &v }

func TestCreateRequestDefaults(t *testing.T) {
	svc := NewRepairRequestService(newFakeRequestStore(), nil)

	created, err := svc.CreateRequest(context.Background(), 4, &models.CreateRepairRequestRequest{
		Title:      "  Broken fan  ",
		CategoryID: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.Title != "Broken fan" {
		t.Fatalf("title = %q", created.Title)
	}
	if created.Status != models.StatusPending {
		t.Fatalf("status = %s, want pending", created.Status)
	}
	if created.Priority != models.PriorityMedium {
		t.Fatalf("priority = %s, want medium", created.Priority)
	}
	if created.RequesterID != 4 {
		t.Fatalf("requesterId = %d, want 4", created.RequesterID)
	}
}

func TestCreateRequestValidation(t *testing.T) {
	svc := NewRepairRequestService(newFakeRequestStore(), nil)

	cases := []struct {
		name string
		req  models.CreateRepairRequestRequest
	}{
		{"blank title", models.CreateRepairRequestRequest{Title: "  ", CategoryID: 1}},
		{"missing category", models.CreateRepairRequestRequest{Title: "x"}},
		{"too many images", models.CreateRepairRequestRequest{
			Title: "x", CategoryID: 1,
			Images: []string{"a", "b", "c", "d"},
		}},
		{"bad priority", models.CreateRepairRequestRequest{
			Title: "x", CategoryID: 1, Priority: "asap",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateRequest(context.Background(), 1, &tc.req); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestUpdateRequestPartial(t *testing.T) {
	store := newFakeRequestStore()
	svc := NewRepairRequestService(store, nil)
	created, err := svc.CreateRequest(context.Background(), 1, &models.CreateRepairRequestRequest{
		Title: "Broken fan", Description: "keeps rattling", CategoryID: 2,
	})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.UpdateRequest(context.Background(), created.ID, &models.UpdateRepairRequestRequest{
		Status: ptr(models.StatusInProgress),
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != models.StatusInProgress {
		t.Fatalf("status = %s", updated.Status)
	}
	if updated.Title != "Broken fan" || updated.Description != "keeps rattling" {
		t.Fatalf("omitted fields changed: %+v", updated)
	}
}

func TestUpdateRequestCompletedAtLifecycle(t *testing.T) {
	store := newFakeRequestStore()
	svc := NewRepairRequestService(store, nil)
	created, _ := svc.CreateRequest(context.Background(), 1, &models.CreateRepairRequestRequest{
		Title: "Broken fan", CategoryID: 2,
	})

	done, err := svc.UpdateRequest(context.Background(), created.ID, &models.UpdateRepairRequestRequest{
		Status: ptr(models.StatusCompleted),
	})
	if err != nil {
		t.Fatal(err)
	}
	if done.CompletedAt == nil {
		t.Fatal("completedAt not stamped")
	}
	stamp := *done.CompletedAt

	// A second update that stays completed keeps the original stamp.
	done, err = svc.UpdateRequest(context.Background(), created.ID, &models.UpdateRepairRequestRequest{
		Cost: ptr(250.0),
	})
	if err != nil {
		t.Fatal(err)
	}
	if done.CompletedAt == nil || !done.CompletedAt.Equal(stamp) {
		t.Fatalf("completedAt restamped: %v vs %v", done.CompletedAt, stamp)
	}
	if done.Cost != 250 {
		t.Fatalf("cost = %v", done.Cost)
	}

	// Reopening clears the stamp.
	reopened, err := svc.UpdateRequest(context.Background(), created.ID, &models.UpdateRepairRequestRequest{
		Status: ptr(models.StatusInProgress),
	})
	if err != nil {
		t.Fatal(err)
	}
	if reopened.CompletedAt != nil {
		t.Fatal("completedAt not cleared on reopen")
	}
}

func TestUpdateRequestTechnicianAssignment(t *testing.T) {
	store := newFakeRequestStore()
	svc := NewRepairRequestService(store, nil)
	created, _ := svc.CreateRequest(context.Background(), 1, &models.CreateRepairRequestRequest{
		Title: "Broken fan", CategoryID: 2,
	})

	assigned, err := svc.UpdateRequest(context.Background(), created.ID, &models.UpdateRepairRequestRequest{
		TechnicianID: ptr(7),
	})
	if err != nil {
		t.Fatal(err)
	}
	if assigned.TechnicianID == nil || *assigned.TechnicianID != 7 {
		t.Fatalf("technicianId = %v, want 7", assigned.TechnicianID)
	}

	// Zero unassigns.
	unassigned, err := svc.UpdateRequest(context.Background(), created.ID, &models.UpdateRepairRequestRequest{
		TechnicianID: ptr(0),
	})
	if err != nil {
		t.Fatal(err)
	}
	if unassigned.TechnicianID != nil {
		t.Fatalf("technicianId = %v, want nil", unassigned.TechnicianID)
	}
}

func TestUpdateRequestInvalidStatus(t *testing.T) {
	store := newFakeRequestStore()
	svc := NewRepairRequestService(store, nil)
	created, _ := svc.CreateRequest(context.Background(), 1, &models.CreateRepairRequestRequest{
		Title: "Broken fan", CategoryID: 2,
	})

	bad := models.RepairStatus("archived")
	if _, err := svc.UpdateRequest(context.Background(), created.ID, &models.UpdateRepairRequestRequest{Status: &bad}); err == nil {
		t.Fatal("expected invalid status error")
	}
}

func TestListRequestsFallsThroughToStore(t *testing.T) {
	store := newFakeRequestStore()
	svc := NewRepairRequestService(store, nil)
	for _, title := range []string{"Broken fan", "Leaky pipe"} {
		if _, err := svc.CreateRequest(context.Background(), 1, &models.CreateRepairRequestRequest{
			Title: title, CategoryID: 2,
		}); err != nil {
			t.Fatal(err)
		}
	}

	// Redis is not initialized in tests, so the list comes straight
	// from the store.
	requests, err := svc.ListRequests(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(requests) != 2 {
		t.Fatalf("len = %d, want 2", len(requests))
	}
}

func TestUpdateRequestNotFound(t *testing.T) {
	svc := NewRepairRequestService(newFakeRequestStore(), nil)
	_, err := svc.UpdateRequest(context.Background(), 99, &models.UpdateRepairRequestRequest{})
	if err == nil {
		t.Fatal("expected not found error")
	}
}
