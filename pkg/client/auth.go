package client

import (
	"context"
	"fmt"
	"strings"
)

// LoginRequest carries credentials for Login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest carries the fields for a new account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// Login exchanges credentials for a session. On success the token and
// profile are installed in the session store; on failure any existing
// session is left untouched.
func (c *Client) Login(ctx context.Context, username, password string) (*User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	var resp AuthResponse
	if err := c.do(ctx, "POST", "/auth/login", LoginRequest{Username: username, Password: password}, &resp); err != nil {
		return nil, err
	}

	if err := c.session.SetUser(resp.User); err != nil {
		return nil, err
	}
	if err := c.session.SetToken(resp.Token); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Register creates an account and installs the returned session.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	var resp AuthResponse
	if err := c.do(ctx, "POST", "/auth/register", req, &resp); err != nil {
		return nil, err
	}

	if err := c.session.SetUser(resp.User); err != nil {
		return nil, err
	}
	if err := c.session.SetToken(resp.Token); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Me fetches the authenticated caller's profile from the server.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, "GET", "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout drops the local session. The server holds no session state,
// so no call is made.
func (c *Client) Logout() error {
	return c.session.Clear()
}
