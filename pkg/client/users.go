package client

import (
	"context"
	"fmt"
	"strings"
)

type CreateUser struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"fullName"`
	Role        Role   `json:"role"`
	PhoneNumber string `json:"phoneNumber"`
	TelegramID  string `json:"telegramId"`
}

// UpdateUser is a partial user update. An empty password means "no
// change": use SetPassword to change it so the field is only present
// when it really should overwrite.
type UpdateUser struct {
	Username    *string `json:"username,omitempty"`
	Email       *string `json:"email,omitempty"`
	Password    *string `json:"password,omitempty"`
	FullName    *string `json:"fullName,omitempty"`
	Role        *Role   `json:"role,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	TelegramID  *string `json:"telegramId,omitempty"`
}

// SetPassword includes a password change in the update, ignoring an
// empty string so a blank form field never wipes the password.
func (u *UpdateUser) SetPassword(password string) {
	if password == "" {
		return
	}
	u.Password = &password
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, "GET", "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Technicians filters the user list down to assignable accounts, the
// candidate pool for assignment dropdowns. Admins can take requests
// themselves, so they belong to the pool too.
func (c *Client) Technicians(ctx context.Context) ([]User, error) {
	users, err := c.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	technicians := make([]User, 0, len(users))
	for _, u := range users {
		if u.Role == RoleTechnician || u.Role == RoleAdmin {
			technicians = append(technicians, u)
		}
	}
	return technicians, nil
}

func (c *Client) GetUser(ctx context.Context, id int) (*User, error) {
	var user User
	if err := c.do(ctx, "GET", fmt.Sprintf("/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CreateUser(ctx context.Context, req CreateUser) (*User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}

	var user User
	if err := c.do(ctx, "POST", "/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int, req UpdateUser) (*User, error) {
	var user User
	if err := c.do(ctx, "PUT", fmt.Sprintf("/users/%d", id), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/users/%d", id), nil, nil)
}
