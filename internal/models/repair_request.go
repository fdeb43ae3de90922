package models

import "time"

type RepairStatus string

const (
	StatusPending     RepairStatus = "pending"
	StatusInProgress  RepairStatus = "in_progress"
	StatusWaitingPart RepairStatus = "waiting_part"
	StatusCompleted   RepairStatus = "completed"
	StatusRejected    RepairStatus = "rejected"
)

func (s RepairStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusWaitingPart, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

type RepairPriority string

const (
	PriorityLow    RepairPriority = "low"
	PriorityMedium RepairPriority = "medium"
	PriorityHigh   RepairPriority = "high"
	PriorityUrgent RepairPriority = "urgent"
)

func (p RepairPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// MaxRequestImages caps the image attachments per repair request.
const MaxRequestImages = 3

type RepairRequest struct {
	ID              int            `json:"ID"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Location        string         `json:"location"`
	CategoryID      int            `json:"categoryId"`
	Category        *Category      `json:"category,omitempty"`
	RequesterID     int            `json:"requesterId"`
	Requester       *User          `json:"requester,omitempty"`
	TechnicianID    *int           `json:"technicianId"`
	Technician      *User          `json:"technician,omitempty"`
	Status          RepairStatus   `json:"status"`
	Priority        RepairPriority `json:"priority"`
	Images          []string       `json:"images"`
	Cost            float64        `json:"cost"`
	RejectionReason string         `json:"rejectionReason"`
	CompletedAt     *time.Time     `json:"completedAt"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// CreateRepairRequestRequest represents the request body for filing a
// repair request. Images must already be uploaded; the slice holds the
// server-assigned paths in submission order.
type CreateRepairRequestRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	CategoryID  int            `json:"categoryId"`
	Priority    RepairPriority `json:"priority"`
	Images      []string       `json:"images"`
}

// UpdateRepairRequestRequest represents a partial update. A nil field
// was not present in the payload and leaves the stored value untouched.
type UpdateRepairRequestRequest struct {
	Title           *string         `json:"title,omitempty"`
	Description     *string         `json:"description,omitempty"`
	Location        *string         `json:"location,omitempty"`
	CategoryID      *int            `json:"categoryId,omitempty"`
	TechnicianID    *int            `json:"technicianId,omitempty"`
	Status          *RepairStatus   `json:"status,omitempty"`
	Priority        *RepairPriority `json:"priority,omitempty"`
	Cost            *float64        `json:"cost,omitempty"`
	RejectionReason *string         `json:"rejectionReason,omitempty"`
}
