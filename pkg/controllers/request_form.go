package controllers

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/khunmostz/Repair-Management-System/pkg/client"
)

// RequestFormController drives the "file a request" form, including
// the upload-then-create sequence: images are uploaded first and the
// returned paths go into the creation payload in submission order.
type RequestFormController struct {
	api *client.Client

	mu    sync.Mutex
	state ViewState[*client.RepairRequest]

	// form fields
	Title       string
	Description string
	Location    string
	CategoryID  int
	Priority    client.Priority
	Images      []client.ImageFile
}

func NewRequestFormController(api *client.Client) *RequestFormController {
	return &RequestFormController{api: api, Priority: client.PriorityMedium}
}

func (c *RequestFormController) State() ViewState[*client.RepairRequest] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// AttachImage validates and adds a file to the pending uploads. The
// cap and per-file checks run here, before any network traffic.
func (c *RequestFormController) AttachImage(f client.ImageFile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Images) >= client.MaxImages {
		return fmt.Errorf("%w: at most %d images allowed", client.ErrValidation, client.MaxImages)
	}
	if err := client.ValidateImage(f); err != nil {
		return err
	}
	c.Images = append(c.Images, f)
	return nil
}

// Submit validates, uploads any attached images, then creates the
// request. A failure between upload and create leaves the uploaded
// files orphaned on the server; nothing compensates for that.
func (c *RequestFormController) Submit(ctx context.Context) error {
	c.mu.Lock()
	if strings.TrimSpace(c.Title) == "" || c.CategoryID <= 0 {
		c.state = failed[*client.RepairRequest]("Title and category are required")
		c.mu.Unlock()
		return client.ErrValidation
	}
	images := c.Images
	form := client.CreateRepairRequest{
		Title:       strings.TrimSpace(c.Title),
		Description: c.Description,
		Location:    c.Location,
		CategoryID:  c.CategoryID,
		Priority:    c.Priority,
	}
	c.state = ViewState[*client.RepairRequest]{Phase: Loading}
	c.mu.Unlock()

	if len(images) > 0 {
		paths, err := c.api.UploadImages(ctx, images)
		if err != nil {
			c.fail(err)
			return err
		}
		form.Images = paths
	}

	created, err := c.api.CreateRepairRequest(ctx, form)
	if err != nil {
		c.fail(err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
	c.state = loaded(created)
	return nil
}

func (c *RequestFormController) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = failed[*client.RepairRequest](err.Error())
}

func (c *RequestFormController) reset() {
	c.Title = ""
	c.Description = ""
	c.Location = ""
	c.CategoryID = 0
	c.Priority = client.PriorityMedium
	c.Images = nil
}
