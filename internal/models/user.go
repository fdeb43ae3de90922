package models

import "time"

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleTechnician UserRole = "technician"
	RoleRequester  UserRole = "requester"
)

// Valid reports whether the role is one of the three known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleTechnician, RoleRequester:
		return true
	}
	return false
}

type User struct {
	ID           int        `json:"ID"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	FullName     string     `json:"fullName"`
	PasswordHash string     `json:"-"` // Never expose in JSON
	Role         UserRole   `json:"role"`
	PhoneNumber  string     `json:"phoneNumber"`
	TelegramID   string     `json:"telegramId"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Email    string   `json:"email"`
	FullName string   `json:"fullName"`
	Role     UserRole `json:"role"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	FullName    string   `json:"fullName"`
	Role        UserRole `json:"role"`
	PhoneNumber string   `json:"phoneNumber"`
	TelegramID  string   `json:"telegramId"`
}

// UpdateUserRequest represents the request body for updating a user.
// Pointer fields distinguish "omitted" from "set to zero value"; an
// omitted password keeps the stored hash.
type UpdateUserRequest struct {
	Username    *string   `json:"username,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Password    *string   `json:"password,omitempty"`
	FullName    *string   `json:"fullName,omitempty"`
	Role        *UserRole `json:"role,omitempty"`
	PhoneNumber *string   `json:"phoneNumber,omitempty"`
	TelegramID  *string   `json:"telegramId,omitempty"`
}
