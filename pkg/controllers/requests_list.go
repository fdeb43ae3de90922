package controllers

import (
	"context"
	"strings"
	"sync"

	"github.com/khunmostz/Repair-Management-System/pkg/client"
)

// RequestListController drives the repair request table: a full list
// fetch plus local status and text filters.
type RequestListController struct {
	api *client.Client

	mu    sync.Mutex
	gen   uint64
	state ViewState[[]client.RepairRequest]

	// filters, applied locally over the loaded list
	StatusFilter client.Status
	Search       string
}

func NewRequestListController(api *client.Client) *RequestListController {
	return &RequestListController{api: api}
}

func (c *RequestListController) State() ViewState[[]client.RepairRequest] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *RequestListController) Load(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.state = ViewState[[]client.RepairRequest]{Phase: Loading}
	c.mu.Unlock()

	requests, err := c.api.ListRepairRequests(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil
	}
	if err != nil {
		c.state = failed[[]client.RepairRequest](err.Error())
		return err
	}
	c.state = loaded(requests)
	return nil
}

// Visible applies the local filters to the loaded list. Empty filters
// pass everything through. Returns nil outside the Loaded phase.
func (c *RequestListController) Visible() []client.RepairRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Phase != Loaded {
		return nil
	}

	search := strings.ToLower(strings.TrimSpace(c.Search))
	visible := make([]client.RepairRequest, 0, len(c.state.Data))
	for _, r := range c.state.Data {
		if c.StatusFilter != "" && r.Status != c.StatusFilter {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(r.Title), search) &&
			!strings.Contains(strings.ToLower(r.Location), search) {
			continue
		}
		visible = append(visible, r)
	}
	return visible
}

// Delete removes a request and refetches the list so the table
// reflects server state rather than a local merge.
func (c *RequestListController) Delete(ctx context.Context, id int) error {
	if !client.CanPerform(c.api.Session().Role(), client.ActionDeleteRequest) {
		return client.ErrValidation
	}
	if err := c.api.DeleteRepairRequest(ctx, id); err != nil {
		return err
	}
	return c.Load(ctx)
}
