package controllers

import (
	"context"
	"strings"
	"sync"

	"github.com/khunmostz/Repair-Management-System/pkg/client"
)

// CategoriesController drives the category management table.
type CategoriesController struct {
	api *client.Client

	mu    sync.Mutex
	gen   uint64
	state ViewState[[]client.Category]

	// form fields for the create/edit dialog
	Name        string
	Description string
}

func NewCategoriesController(api *client.Client) *CategoriesController {
	return &CategoriesController{api: api}
}

func (c *CategoriesController) State() ViewState[[]client.Category] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *CategoriesController) Load(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.state = ViewState[[]client.Category]{Phase: Loading}
	c.mu.Unlock()

	categories, err := c.api.ListCategories(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil
	}
	if err != nil {
		c.state = failed[[]client.Category](err.Error())
		return err
	}
	c.state = loaded(categories)
	return nil
}

// Create validates the dialog fields, creates the category and
// refetches the list.
func (c *CategoriesController) Create(ctx context.Context) error {
	c.mu.Lock()
	name := strings.TrimSpace(c.Name)
	description := c.Description
	c.mu.Unlock()

	if _, err := c.api.CreateCategory(ctx, client.CreateCategory{Name: name, Description: description}); err != nil {
		return err
	}

	c.mu.Lock()
	c.Name = ""
	c.Description = ""
	c.mu.Unlock()
	return c.Load(ctx)
}

// Update renames or re-describes a category and refetches the list.
func (c *CategoriesController) Update(ctx context.Context, id int) error {
	c.mu.Lock()
	name := strings.TrimSpace(c.Name)
	description := c.Description
	c.mu.Unlock()

	if _, err := c.api.UpdateCategory(ctx, id, client.UpdateCategory{Name: &name, Description: &description}); err != nil {
		return err
	}
	return c.Load(ctx)
}

func (c *CategoriesController) Delete(ctx context.Context, id int) error {
	if err := c.api.DeleteCategory(ctx, id); err != nil {
		return err
	}
	return c.Load(ctx)
}
