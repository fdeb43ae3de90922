package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// CreateRepairRequest carries the fields for filing a request. Images
// must already be uploaded; the slice holds storage paths in
// submission order.
type CreateRepairRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	CategoryID  int      `json:"categoryId"`
	Priority    Priority `json:"priority"`
	Images      []string `json:"images"`
}

// UpdateRepairRequest is a partial update payload. Nil fields are
// omitted from the wire and left untouched by the server.
type UpdateRepairRequest struct {
	Title           *string   `json:"title,omitempty"`
	Description     *string   `json:"description,omitempty"`
	Location        *string   `json:"location,omitempty"`
	CategoryID      *int      `json:"categoryId,omitempty"`
	TechnicianID    *int      `json:"technicianId,omitempty"`
	Status          *Status   `json:"status,omitempty"`
	Priority        *Priority `json:"priority,omitempty"`
	Cost            *float64  `json:"cost,omitempty"`
	RejectionReason *string   `json:"rejectionReason,omitempty"`
}

// IsEmpty reports whether the payload carries no changes.
func (u *UpdateRepairRequest) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Location == nil &&
		u.CategoryID == nil && u.TechnicianID == nil && u.Status == nil &&
		u.Priority == nil && u.Cost == nil && u.RejectionReason == nil
}

// RepairRequestEdit mirrors an edit form. Numeric inputs arrive as the
// strings the user typed; TechnicianID "" or "0" means unassigned.
type RepairRequestEdit struct {
	Title           string
	Description     string
	Location        string
	CategoryID      int
	TechnicianID    string
	Status          Status
	Priority        Priority
	Cost            string
	RejectionReason string
}

// EditOf pre-fills an edit form from a stored request, the starting
// point for DiffEdit.
func EditOf(r *RepairRequest) RepairRequestEdit {
	edit := RepairRequestEdit{
		Title:           r.Title,
		Description:     r.Description,
		Location:        r.Location,
		CategoryID:      r.CategoryID,
		Status:          r.Status,
		Priority:        r.Priority,
		Cost:            strconv.FormatFloat(r.Cost, 'f', -1, 64),
		RejectionReason: r.RejectionReason,
	}
	if r.TechnicianID != nil {
		edit.TechnicianID = strconv.Itoa(*r.TechnicianID)
	}
	return edit
}

// DiffEdit computes the minimal update payload between the stored
// request and an edit form. A field appears in the payload iff its
// value changed; cost and technician are compared numerically so
// "15" vs "15.0" or re-selecting the same technician emit nothing.
func DiffEdit(prev *RepairRequest, edit RepairRequestEdit) (*UpdateRepairRequest, error) {
	payload := &UpdateRepairRequest{}

	if edit.Title != prev.Title {
		if strings.TrimSpace(edit.Title) == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
		}
		payload.Title = &edit.Title
	}
	if edit.Description != prev.Description {
		payload.Description = &edit.Description
	}
	if edit.Location != prev.Location {
		payload.Location = &edit.Location
	}
	if edit.CategoryID != prev.CategoryID {
		payload.CategoryID = &edit.CategoryID
	}

	techID, err := parseTechnicianID(edit.TechnicianID)
	if err != nil {
		return nil, err
	}
	if !sameTechnician(prev.TechnicianID, techID) {
		if techID == nil {
			// Zero signals "unassign" where omitting would mean "unchanged".
			zero := 0
			payload.TechnicianID = &zero
		} else {
			payload.TechnicianID = techID
		}
	}

	if edit.Status != prev.Status {
		payload.Status = &edit.Status
	}
	if edit.Priority != prev.Priority {
		payload.Priority = &edit.Priority
	}

	cost, err := parseCost(edit.Cost)
	if err != nil {
		return nil, err
	}
	if cost != prev.Cost {
		payload.Cost = &cost
	}

	if edit.RejectionReason != prev.RejectionReason {
		payload.RejectionReason = &edit.RejectionReason
	}
	return payload, nil
}

func parseTechnicianID(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return nil, nil
	}
	id, err := strconv.Atoi(s)
	if err != nil || id < 0 {
		return nil, fmt.Errorf("%w: invalid technician id %q", ErrValidation, s)
	}
	return &id, nil
}

func parseCost(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	cost, err := strconv.ParseFloat(s, 64)
	if err != nil || cost < 0 {
		return 0, fmt.Errorf("%w: invalid cost %q", ErrValidation, s)
	}
	return cost, nil
}

func sameTechnician(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (c *Client) ListRepairRequests(ctx context.Context) ([]RepairRequest, error) {
	var requests []RepairRequest
	if err := c.do(ctx, "GET", "/repair-requests", nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (c *Client) GetRepairRequest(ctx context.Context, id int) (*RepairRequest, error) {
	var request RepairRequest
	if err := c.do(ctx, "GET", fmt.Sprintf("/repair-requests/%d", id), nil, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

func (c *Client) CreateRepairRequest(ctx context.Context, req CreateRepairRequest) (*RepairRequest, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if req.CategoryID <= 0 {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}
	if len(req.Images) > MaxImages {
		return nil, fmt.Errorf("%w: at most %d images allowed", ErrValidation, MaxImages)
	}

	var request RepairRequest
	if err := c.do(ctx, "POST", "/repair-requests", req, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

func (c *Client) UpdateRepairRequest(ctx context.Context, id int, payload *UpdateRepairRequest) (*RepairRequest, error) {
	var request RepairRequest
	if err := c.do(ctx, "PUT", fmt.Sprintf("/repair-requests/%d", id), payload, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

func (c *Client) DeleteRepairRequest(ctx context.Context, id int) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/repair-requests/%d", id), nil, nil)
}
