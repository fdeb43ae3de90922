// Package client is a typed Go client for the repair system API. It
// owns the session lifecycle (token persistence, 401 invalidation) and
// exposes one accessor group per server resource.
package client

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTechnician Role = "technician"
	RoleRequester  Role = "requester"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusInProgress  Status = "in_progress"
	StatusWaitingPart Status = "waiting_part"
	StatusCompleted   Status = "completed"
	StatusRejected    Status = "rejected"
)

// Statuses lists every repair status in lifecycle order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusWaitingPart, StatusCompleted, StatusRejected}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type User struct {
	ID          int        `json:"ID"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FullName    string     `json:"fullName"`
	Role        Role       `json:"role"`
	PhoneNumber string     `json:"phoneNumber"`
	TelegramID  string     `json:"telegramId"`
	LastLogin   *time.Time `json:"lastLogin,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type Category struct {
	ID          int       `json:"ID"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type RepairRequest struct {
	ID              int        `json:"ID"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Location        string     `json:"location"`
	CategoryID      int        `json:"categoryId"`
	Category        *Category  `json:"category,omitempty"`
	RequesterID     int        `json:"requesterId"`
	Requester       *User      `json:"requester,omitempty"`
	TechnicianID    *int       `json:"technicianId"`
	Technician      *User      `json:"technician,omitempty"`
	Status          Status     `json:"status"`
	Priority        Priority   `json:"priority"`
	Images          []string   `json:"images"`
	Cost            float64    `json:"cost"`
	RejectionReason string     `json:"rejectionReason"`
	CompletedAt     *time.Time `json:"completedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type TelegramSettings struct {
	Enabled              bool   `json:"enabled"`
	BotToken             string `json:"botToken"`
	ChatID               string `json:"chatId"`
	NotifyOnNewRequest   bool   `json:"notifyOnNewRequest"`
	NotifyOnStatusChange bool   `json:"notifyOnStatusChange"`
	NotifyOnAssignment   bool   `json:"notifyOnAssignment"`
	NotifyOnCompletion   bool   `json:"notifyOnCompletion"`
}

type SystemSettings struct {
	SiteName              string `json:"siteName"`
	SiteDescription       string `json:"siteDescription"`
	AdminEmail            string `json:"adminEmail"`
	AutoAssignTechnicians bool   `json:"autoAssignTechnicians"`
	RequireApproval       bool   `json:"requireApproval"`
	DefaultPriority       string `json:"defaultPriority"`
	MaintenanceMode       bool   `json:"maintenanceMode"`
}

// Settings is the server-held singleton. It is fetched and replaced
// wholesale, never cached by the client.
type Settings struct {
	Telegram TelegramSettings `json:"telegram"`
	System   SystemSettings   `json:"system"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
