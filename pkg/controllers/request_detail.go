package controllers

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/khunmostz/Repair-Management-System/pkg/client"
)

// RequestDetail is what the detail screen displays: the request plus
// the technician pool for the assignment dropdown.
type RequestDetail struct {
	Request     *client.RepairRequest
	Technicians []client.User
}

// RequestDetailController drives the detail and edit screen. Load
// fetches the entity and the technician list concurrently; the edit
// dialog opens only once both have arrived.
type RequestDetailController struct {
	api *client.Client

	mu    sync.Mutex
	gen   uint64
	state ViewState[*RequestDetail]

	// Edit mirrors the edit form, pre-filled on each successful Load.
	Edit client.RepairRequestEdit
}

func NewRequestDetailController(api *client.Client) *RequestDetailController {
	return &RequestDetailController{api: api}
}

func (c *RequestDetailController) State() ViewState[*RequestDetail] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *RequestDetailController) Load(ctx context.Context, id int) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.state = ViewState[*RequestDetail]{Phase: Loading}
	c.mu.Unlock()

	var detail RequestDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		request, err := c.api.GetRepairRequest(gctx, id)
		if err != nil {
			return err
		}
		detail.Request = request
		return nil
	})
	g.Go(func() error {
		// The dropdown is for roles that can edit; requesters get a
		// read-only view and must not trip a 403 on the user list.
		if !client.CanPerform(c.api.Session().Role(), client.ActionUpdateRequest) {
			return nil
		}
		// The user list is admin-only server-side. A technician's
		// fetch fails with 403; the screen still edits fine with an
		// empty pool, so a pool failure never fails the load.
		technicians, err := c.api.Technicians(gctx)
		if err != nil {
			return nil
		}
		detail.Technicians = technicians
		return nil
	})
	err := g.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil
	}
	if err != nil {
		if client.IsNotFound(err) {
			c.state = ViewState[*RequestDetail]{Phase: NotFound}
		} else {
			c.state = failed[*RequestDetail](err.Error())
		}
		return err
	}
	c.state = loaded(&detail)
	c.Edit = client.EditOf(detail.Request)
	return nil
}

// Save diffs the edit form against the loaded request and sends only
// the changed fields, then reloads to reflect server state.
func (c *RequestDetailController) Save(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Phase != Loaded {
		c.mu.Unlock()
		return client.ErrValidation
	}
	prev := c.state.Data.Request
	edit := c.Edit
	c.mu.Unlock()

	payload, err := client.DiffEdit(prev, edit)
	if err != nil {
		return err
	}
	if payload.IsEmpty() {
		return nil
	}

	if _, err := c.api.UpdateRepairRequest(ctx, prev.ID, payload); err != nil {
		return err
	}
	return c.Load(ctx, prev.ID)
}
