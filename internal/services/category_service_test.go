package services

import (
	"context"
	"testing"

	"github.com/khunmostz/Repair-Management-System/internal/models"
	"github.com/khunmostz/Repair-Management-System/internal/repositories"
)

type fakeCategoryStore struct {
	categories map[int]*models.Category
	nextID     int
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{categories: map[int]*models.Category{}, nextID: 1}
}

func (f *fakeCategoryStore) Create(ctx context.Context, c *models.Category) error {
	c.ID = f.nextID
	f.nextID++
	clone := *c
	f.categories[c.ID] = &clone
	return nil
}

func (f *fakeCategoryStore) Get(ctx context.Context, id int) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (f *fakeCategoryStore) List(ctx context.Context) ([]models.Category, error) {
	out := make([]models.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCategoryStore) Update(ctx context.Context, c *models.Category) error {
	if _, ok := f.categories[c.ID]; !ok {
		return repositories.ErrNotFound
	}
	clone := *c
	f.categories[c.ID] = &clone
	return nil
}

func (f *fakeCategoryStore) Delete(ctx context.Context, id int) error {
	if _, ok := f.categories[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.categories, id)
	return nil
}

func TestCreateCategoryTrimsAndValidates(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryStore())

	created, err := svc.CreateCategory(context.Background(), &models.CreateCategoryRequest{
		Name: "  Plumbing  ", Description: "pipes",
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.Name != "Plumbing" {
		t.Fatalf("name = %q", created.Name)
	}

	if _, err := svc.CreateCategory(context.Background(), &models.CreateCategoryRequest{Name: "   "}); err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestUpdateCategoryPartial(t *testing.T) {
	store := newFakeCategoryStore()
	svc := NewCategoryService(store)
	created, _ := svc.CreateCategory(context.Background(), &models.CreateCategoryRequest{
		Name: "Plumbing", Description: "pipes",
	})

	desc := "pipes and drains"
	updated, err := svc.UpdateCategory(context.Background(), created.ID, &models.UpdateCategoryRequest{
		Description: &desc,
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Plumbing" || updated.Description != "pipes and drains" {
		t.Fatalf("updated = %+v", updated)
	}
}

func TestListCategoriesFallsThroughToStore(t *testing.T) {
	store := newFakeCategoryStore()
	svc := NewCategoryService(store)
	for _, name := range []string{"Plumbing", "Electrical"} {
		if _, err := svc.CreateCategory(context.Background(), &models.CreateCategoryRequest{Name: name}); err != nil {
			t.Fatal(err)
		}
	}

	// Redis is not initialized in tests, so the list comes straight
	// from the store.
	categories, err := svc.ListCategories(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(categories) != 2 {
		t.Fatalf("len = %d, want 2", len(categories))
	}
}
