package client

import "context"

// HiddenToken is the placeholder the server returns instead of the
// stored bot token. Sending it back keeps the current token.
const HiddenToken = "***hidden***"

type TestTelegram struct {
	BotToken string `json:"botToken"`
	ChatID   string `json:"chatId"`
}

// GetSettings fetches the settings singleton. The bot token arrives
// masked as HiddenToken when one is stored.
func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	var settings Settings
	if err := c.do(ctx, "GET", "/settings", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings replaces the settings singleton wholesale and returns
// the server's view of the result.
func (c *Client) UpdateSettings(ctx context.Context, settings *Settings) (*Settings, error) {
	var updated Settings
	if err := c.do(ctx, "PUT", "/settings", settings, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// TestTelegramChannel sends a one-off probe message with the given
// credentials, independent of the persisted enabled flag.
func (c *Client) TestTelegramChannel(ctx context.Context, botToken, chatID string) error {
	return c.do(ctx, "POST", "/settings/test-telegram", TestTelegram{BotToken: botToken, ChatID: chatID}, nil)
}
