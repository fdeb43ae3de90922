package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/khunmostz/Repair-Management-System/internal/models"
	"github.com/khunmostz/Repair-Management-System/internal/repositories"
)

// SettingStore is the persistence surface the settings service needs.
type SettingStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// SettingsService reads and writes the process-wide settings singleton
// over the key/value settings table. The Telegram bot token is
// encrypted at rest and masked on read.
type SettingsService struct {
	Repo       SettingStore
	encryption *EncryptionService
}

func NewSettingsService(repo SettingStore, encryption *EncryptionService) *SettingsService {
	return &SettingsService{Repo: repo, encryption: encryption}
}

func (s *SettingsService) isSensitiveKey(key string) bool {
	return key == models.SettingTelegramBotToken
}

// SetSetting stores a setting value, encrypting sensitive keys.
func (s *SettingsService) SetSetting(ctx context.Context, key, value string) error {
	if s.isSensitiveKey(key) {
		encrypted, err := s.encryption.Encrypt(value)
		if err != nil {
			return err
		}
		value = encrypted
	}
	return s.Repo.Set(ctx, key, value)
}

// GetSetting retrieves and decrypts a setting value.
func (s *SettingsService) GetSetting(ctx context.Context, key string) (string, error) {
	value, err := s.Repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if s.isSensitiveKey(key) {
		return s.encryption.Decrypt(value)
	}
	return value, nil
}

// GetSettingWithDefault retrieves a setting with a fallback default value
func (s *SettingsService) GetSettingWithDefault(ctx context.Context, key, defaultValue string) string {
	value, err := s.GetSetting(ctx, key)
	if err != nil {
		return defaultValue
	}
	return value
}

// GetBoolSetting retrieves a boolean setting
func (s *SettingsService) GetBoolSetting(ctx context.Context, key string) bool {
	value, err := s.GetSetting(ctx, key)
	if err != nil {
		return false
	}
	result, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return result
}

// SetBoolSetting stores a boolean setting
func (s *SettingsService) SetBoolSetting(ctx context.Context, key string, value bool) error {
	return s.SetSetting(ctx, key, strconv.FormatBool(value))
}

// GetSettings assembles the wholesale settings entity. The bot token is
// replaced by the hidden placeholder.
func (s *SettingsService) GetSettings(ctx context.Context) (*models.Settings, error) {
	if err := s.InitializeDefaultSettings(ctx); err != nil {
		return nil, err
	}

	botToken := ""
	if stored := s.GetSettingWithDefault(ctx, models.SettingTelegramBotToken, ""); stored != "" {
		botToken = models.HiddenTokenPlaceholder
	}

	return &models.Settings{
		Telegram: models.TelegramSettings{
			Enabled:              s.GetBoolSetting(ctx, models.SettingTelegramEnabled),
			BotToken:             botToken,
			ChatID:               s.GetSettingWithDefault(ctx, models.SettingTelegramChatID, ""),
			NotifyOnNewRequest:   s.GetBoolSetting(ctx, models.SettingTelegramNotifyNewRequest),
			NotifyOnStatusChange: s.GetBoolSetting(ctx, models.SettingTelegramNotifyStatusChange),
			NotifyOnAssignment:   s.GetBoolSetting(ctx, models.SettingTelegramNotifyAssignment),
			NotifyOnCompletion:   s.GetBoolSetting(ctx, models.SettingTelegramNotifyCompletion),
		},
		System: models.SystemSettings{
			SiteName:              s.GetSettingWithDefault(ctx, models.SettingSiteName, "Repair System"),
			SiteDescription:       s.GetSettingWithDefault(ctx, models.SettingSiteDescription, "Online repair request system"),
			AdminEmail:            s.GetSettingWithDefault(ctx, models.SettingAdminEmail, "admin@example.com"),
			AutoAssignTechnicians: s.GetBoolSetting(ctx, models.SettingAutoAssignTechnicians),
			RequireApproval:       s.GetBoolSetting(ctx, models.SettingRequireApproval),
			DefaultPriority:       s.GetSettingWithDefault(ctx, models.SettingDefaultPriority, string(models.PriorityMedium)),
			MaintenanceMode:       s.GetBoolSetting(ctx, models.SettingMaintenanceMode),
		},
	}, nil
}

// UpdateSettings replaces the settings singleton wholesale. A bot token
// equal to the hidden placeholder (or empty) keeps the stored token.
func (s *SettingsService) UpdateSettings(ctx context.Context, settings *models.Settings) error {
	if settings.System.DefaultPriority != "" && !models.RepairPriority(settings.System.DefaultPriority).Valid() {
		return errors.New("invalid default priority")
	}

	if err := s.SetBoolSetting(ctx, models.SettingTelegramEnabled, settings.Telegram.Enabled); err != nil {
		return err
	}
	if settings.Telegram.BotToken != "" && settings.Telegram.BotToken != models.HiddenTokenPlaceholder {
		if err := s.SetSetting(ctx, models.SettingTelegramBotToken, settings.Telegram.BotToken); err != nil {
			return err
		}
	}
	if err := s.SetSetting(ctx, models.SettingTelegramChatID, settings.Telegram.ChatID); err != nil {
		return err
	}
	if err := s.SetBoolSetting(ctx, models.SettingTelegramNotifyNewRequest, settings.Telegram.NotifyOnNewRequest); err != nil {
		return err
	}
	if err := s.SetBoolSetting(ctx, models.SettingTelegramNotifyStatusChange, settings.Telegram.NotifyOnStatusChange); err != nil {
		return err
	}
	if err := s.SetBoolSetting(ctx, models.SettingTelegramNotifyAssignment, settings.Telegram.NotifyOnAssignment); err != nil {
		return err
	}
	if err := s.SetBoolSetting(ctx, models.SettingTelegramNotifyCompletion, settings.Telegram.NotifyOnCompletion); err != nil {
		return err
	}

	if err := s.SetSetting(ctx, models.SettingSiteName, settings.System.SiteName); err != nil {
		return err
	}
	if err := s.SetSetting(ctx, models.SettingSiteDescription, settings.System.SiteDescription); err != nil {
		return err
	}
	if err := s.SetSetting(ctx, models.SettingAdminEmail, settings.System.AdminEmail); err != nil {
		return err
	}
	if err := s.SetBoolSetting(ctx, models.SettingAutoAssignTechnicians, settings.System.AutoAssignTechnicians); err != nil {
		return err
	}
	if err := s.SetBoolSetting(ctx, models.SettingRequireApproval, settings.System.RequireApproval); err != nil {
		return err
	}
	if err := s.SetSetting(ctx, models.SettingDefaultPriority, settings.System.DefaultPriority); err != nil {
		return err
	}
	return s.SetBoolSetting(ctx, models.SettingMaintenanceMode, settings.System.MaintenanceMode)
}

// InitializeDefaultSettings creates default settings if they don't exist
func (s *SettingsService) InitializeDefaultSettings(ctx context.Context) error {
	defaults := map[string]string{
		models.SettingTelegramEnabled:            "false",
		models.SettingTelegramNotifyNewRequest:   "true",
		models.SettingTelegramNotifyStatusChange: "true",
		models.SettingTelegramNotifyAssignment:   "true",
		models.SettingTelegramNotifyCompletion:   "true",
		models.SettingSiteName:                   "Repair System",
		models.SettingSiteDescription:            "Online repair request system",
		models.SettingAdminEmail:                 "admin@example.com",
		models.SettingAutoAssignTechnicians:      "false",
		models.SettingRequireApproval:            "true",
		models.SettingDefaultPriority:            string(models.PriorityMedium),
		models.SettingMaintenanceMode:            "false",
	}

	for key, value := range defaults {
		_, err := s.Repo.Get(ctx, key)
		if err == nil {
			continue
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		if err := s.SetSetting(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}
