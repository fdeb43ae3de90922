package controllers

import (
	"context"
	"sync"

	"github.com/khunmostz/Repair-Management-System/pkg/client"
)

// SettingsController drives the admin settings screen. The settings
// document is read and replaced wholesale; the Form field holds the
// working copy between Load and Save.
type SettingsController struct {
	api *client.Client

	mu    sync.Mutex
	gen   uint64
	state ViewState[*client.Settings]

	Form client.Settings
}

func NewSettingsController(api *client.Client) *SettingsController {
	return &SettingsController{api: api}
}

func (c *SettingsController) State() ViewState[*client.Settings] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *SettingsController) Load(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.state = ViewState[*client.Settings]{Phase: Loading}
	c.mu.Unlock()

	settings, err := c.api.GetSettings(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil
	}
	if err != nil {
		c.state = failed[*client.Settings](err.Error())
		return err
	}
	c.state = loaded(settings)
	c.Form = *settings
	return nil
}

// Save replaces the settings document and reloads the masked view. A
// bot token left as the hidden placeholder keeps the stored token.
func (c *SettingsController) Save(ctx context.Context) error {
	c.mu.Lock()
	form := c.Form
	c.mu.Unlock()

	if _, err := c.api.UpdateSettings(ctx, &form); err != nil {
		return err
	}
	return c.Load(ctx)
}

// TestTelegram probes the credentials currently in the form without
// persisting anything.
func (c *SettingsController) TestTelegram(ctx context.Context) error {
	c.mu.Lock()
	token := c.Form.Telegram.BotToken
	chatID := c.Form.Telegram.ChatID
	c.mu.Unlock()

	return c.api.TestTelegramChannel(ctx, token, chatID)
}
