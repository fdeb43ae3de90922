package controllers

import (
	"context"
	"sync"

	"github.com/khunmostz/Repair-Management-System/pkg/client"
)

// DashboardController loads the request list and derives the stats
// shown on the dashboard. Stats are recomputed on every Load.
type DashboardController struct {
	api *client.Client

	mu    sync.Mutex
	gen   uint64
	state ViewState[*client.DashboardStats]
}

func NewDashboardController(api *client.Client) *DashboardController {
	return &DashboardController{api: api}
}

func (c *DashboardController) State() ViewState[*client.DashboardStats] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *DashboardController) Load(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.state = ViewState[*client.DashboardStats]{Phase: Loading}
	c.mu.Unlock()

	stats, err := c.api.DashboardStats(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// A newer load superseded this one; drop the response.
		return nil
	}
	if err != nil {
		c.state = failed[*client.DashboardStats](err.Error())
		return err
	}
	c.state = loaded(stats)
	return nil
}
