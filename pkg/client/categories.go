package client

import (
	"context"
	"fmt"
	"strings"
)

type CreateCategory struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateCategory struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, "GET", "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) GetCategory(ctx context.Context, id int) (*Category, error) {
	var category Category
	if err := c.do(ctx, "GET", fmt.Sprintf("/categories/%d", id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) CreateCategory(ctx context.Context, req CreateCategory) (*Category, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidation)
	}

	var category Category
	if err := c.do(ctx, "POST", "/categories", req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int, req UpdateCategory) (*Category, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidation)
	}

	var category Category
	if err := c.do(ctx, "PUT", fmt.Sprintf("/categories/%d", id), req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/categories/%d", id), nil, nil)
}
