package models

import "time"

// Setting is a single key/value row of the process-wide settings
// singleton. Sensitive values (the bot token) are stored encrypted.
type Setting struct {
	ID        int       `json:"id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Predefined setting keys
const (
	// Telegram settings
	SettingTelegramEnabled            = "telegram_enabled"
	SettingTelegramBotToken           = "telegram_bot_token"
	SettingTelegramChatID             = "telegram_chat_id"
	SettingTelegramNotifyNewRequest   = "telegram_notify_new_request"
	SettingTelegramNotifyStatusChange = "telegram_notify_status_change"
	SettingTelegramNotifyAssignment   = "telegram_notify_assignment"
	SettingTelegramNotifyCompletion   = "telegram_notify_completion"

	// System settings
	SettingSiteName              = "site_name"
	SettingSiteDescription       = "site_description"
	SettingAdminEmail            = "admin_email"
	SettingAutoAssignTechnicians = "auto_assign_technicians"
	SettingRequireApproval       = "require_approval"
	SettingDefaultPriority       = "default_priority"
	SettingMaintenanceMode       = "maintenance_mode"
)

// HiddenTokenPlaceholder is returned instead of the stored bot token;
// a client sending it back means "keep the current token".
const HiddenTokenPlaceholder = "***hidden***"

// TelegramSettings is the notification sub-config as transmitted over
// the wire.
type TelegramSettings struct {
	Enabled              bool   `json:"enabled"`
	BotToken             string `json:"botToken"`
	ChatID               string `json:"chatId"`
	NotifyOnNewRequest   bool   `json:"notifyOnNewRequest"`
	NotifyOnStatusChange bool   `json:"notifyOnStatusChange"`
	NotifyOnAssignment   bool   `json:"notifyOnAssignment"`
	NotifyOnCompletion   bool   `json:"notifyOnCompletion"`
}

// SystemSettings is the site-wide sub-config.
type SystemSettings struct {
	SiteName              string `json:"siteName"`
	SiteDescription       string `json:"siteDescription"`
	AdminEmail            string `json:"adminEmail"`
	AutoAssignTechnicians bool   `json:"autoAssignTechnicians"`
	RequireApproval       bool   `json:"requireApproval"`
	DefaultPriority       string `json:"defaultPriority"`
	MaintenanceMode       bool   `json:"maintenanceMode"`
}

// Settings is the singleton settings entity, fetched and replaced
// wholesale.
type Settings struct {
	Telegram TelegramSettings `json:"telegram"`
	System   SystemSettings   `json:"system"`
}

// TestTelegramRequest is the body of the one-off notification probe.
type TestTelegramRequest struct {
	BotToken string `json:"botToken"`
	ChatID   string `json:"chatId"`
}
