package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/khunmostz/Repair-Management-System/internal/cache"
	"github.com/khunmostz/Repair-Management-System/internal/models"
)

// CategoryStore is the persistence surface the category service needs.
type CategoryStore interface {
	Create(ctx context.Context, category *models.Category) error
	Get(ctx context.Context, id int) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id int) error
}

type CategoryService struct {
	Repo CategoryStore
}

func NewCategoryService(repo CategoryStore) *CategoryService {
	return &CategoryService{Repo: repo}
}

func (s *CategoryService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("category name is required")
	}

	category := &models.Category{
		Name:        name,
		Description: req.Description,
	}
	if err := s.Repo.Create(ctx, category); err != nil {
		return nil, err
	}
	cache.InvalidateCategoryCaches(ctx)
	return category, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	return s.Repo.Get(ctx, id)
}

// ListCategories serves from Redis when possible. Categories change
// rarely, so they keep a longer TTL than the request list.
func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	if data, ok := cache.GetCached(ctx, cache.CategoryListKey); ok {
		var categories []models.Category
		if err := json.Unmarshal(data, &categories); err == nil {
			return categories, nil
		}
	}

	categories, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(categories); err == nil {
		cache.SetCached(ctx, cache.CategoryListKey, data, 5*time.Minute)
	}
	return categories, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id int, req *models.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errors.New("category name is required")
		}
		category.Name = name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := s.Repo.Update(ctx, category); err != nil {
		return nil, err
	}
	cache.InvalidateCategoryCaches(ctx)
	return category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id int) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateCategoryCaches(ctx)
	return nil
}
