package controllers

import (
	"context"
	"strings"
	"sync"

	"github.com/khunmostz/Repair-Management-System/pkg/client"
)

// LoginController drives the login screen.
type LoginController struct {
	api *client.Client

	mu    sync.Mutex
	state ViewState[*client.User]

	// form fields
	Username string
	Password string
}

func NewLoginController(api *client.Client) *LoginController {
	return &LoginController{api: api}
}

func (c *LoginController) State() ViewState[*client.User] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit validates the form and attempts login. Validation failures
// stay local; a server rejection surfaces its message and leaves the
// form open.
func (c *LoginController) Submit(ctx context.Context) error {
	c.mu.Lock()
	username := strings.TrimSpace(c.Username)
	password := c.Password
	if username == "" || password == "" {
		c.state = failed[*client.User]("Username and password are required")
		c.mu.Unlock()
		return client.ErrValidation
	}
	c.state = ViewState[*client.User]{Phase: Loading}
	c.mu.Unlock()

	user, err := c.api.Login(ctx, username, password)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = failed[*client.User](err.Error())
		return err
	}
	c.Password = ""
	c.state = loaded(user)
	return nil
}
