package controllers

import (
	"context"
	"strings"
	"sync"

	"github.com/khunmostz/Repair-Management-System/pkg/client"
)

// UserForm mirrors the create/edit user dialog. On edit, an empty
// Password means the password stays as it is.
type UserForm struct {
	Username    string
	Email       string
	Password    string
	FullName    string
	Role        client.Role
	PhoneNumber string
	TelegramID  string
}

// UsersController drives the admin user management table.
type UsersController struct {
	api *client.Client

	mu    sync.Mutex
	gen   uint64
	state ViewState[[]client.User]

	Form UserForm
}

func NewUsersController(api *client.Client) *UsersController {
	return &UsersController{api: api}
}

func (c *UsersController) State() ViewState[[]client.User] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *UsersController) Load(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.state = ViewState[[]client.User]{Phase: Loading}
	c.mu.Unlock()

	users, err := c.api.ListUsers(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil
	}
	if err != nil {
		c.state = failed[[]client.User](err.Error())
		return err
	}
	c.state = loaded(users)
	return nil
}

// Create requires a password, then refetches the table.
func (c *UsersController) Create(ctx context.Context) error {
	c.mu.Lock()
	form := c.Form
	c.mu.Unlock()

	_, err := c.api.CreateUser(ctx, client.CreateUser{
		Username:    strings.TrimSpace(form.Username),
		Email:       form.Email,
		Password:    form.Password,
		FullName:    form.FullName,
		Role:        form.Role,
		PhoneNumber: form.PhoneNumber,
		TelegramID:  form.TelegramID,
	})
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.Form = UserForm{}
	c.mu.Unlock()
	return c.Load(ctx)
}

// Update sends the edited fields; the password is included only when
// the form field is non-empty.
func (c *UsersController) Update(ctx context.Context, id int) error {
	c.mu.Lock()
	form := c.Form
	c.mu.Unlock()

	username := strings.TrimSpace(form.Username)
	payload := client.UpdateUser{
		Username:    &username,
		Email:       &form.Email,
		FullName:    &form.FullName,
		Role:        &form.Role,
		PhoneNumber: &form.PhoneNumber,
		TelegramID:  &form.TelegramID,
	}
	payload.SetPassword(form.Password)

	if _, err := c.api.UpdateUser(ctx, id, payload); err != nil {
		return err
	}
	return c.Load(ctx)
}

func (c *UsersController) Delete(ctx context.Context, id int) error {
	if err := c.api.DeleteUser(ctx, id); err != nil {
		return err
	}
	return c.Load(ctx)
}
