package services

import (
	"context"
	"strings"
	"testing"

	"github.com/khunmostz/Repair-Management-System/internal/models"
	"github.com/khunmostz/Repair-Management-System/internal/repositories"
)

type fakeSettingStore struct {
	values map[string]string
}

func newFakeSettingStore() *fakeSettingStore {
	return &fakeSettingStore{values: map[string]string{}}
}

func (f *fakeSettingStore) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.values[key]
	if !ok {
		return "", repositories.ErrNotFound
	}
	return v, nil
}

func (f *fakeSettingStore) Set(ctx context.Context, key, value string) error {
	f.values[key] = value
	return nil
}

func newTestSettingsService(store SettingStore) *SettingsService {
	return NewSettingsService(store, NewEncryptionService("test-passphrase"))
}

func TestBotTokenEncryptedAtRest(t *testing.T) {
	store := newFakeSettingStore()
	svc := newTestSettingsService(store)

	const token = "123456:ABC-DEF"
	if err := svc.SetSetting(context.Background(), models.SettingTelegramBotToken, token); err != nil {
		t.Fatal(err)
	}

	stored := store.values[models.SettingTelegramBotToken]
	if stored == token || strings.Contains(stored, "ABC-DEF") {
		t.Fatalf("bot token stored in plain text: %q", stored)
	}

	got, err := svc.GetSetting(context.Background(), models.SettingTelegramBotToken)
	if err != nil {
		t.Fatal(err)
	}
	if got != token {
		t.Fatalf("round trip = %q, want %q", got, token)
	}
}

func TestGetSettingsMasksBotToken(t *testing.T) {
	store := newFakeSettingStore()
	svc := newTestSettingsService(store)

	if err := svc.SetSetting(context.Background(), models.SettingTelegramBotToken, "123456:ABC"); err != nil {
		t.Fatal(err)
	}

	settings, err := svc.GetSettings(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if settings.Telegram.BotToken != models.HiddenTokenPlaceholder {
		t.Fatalf("botToken = %q, want placeholder", settings.Telegram.BotToken)
	}
}

func TestGetSettingsNoTokenStaysEmpty(t *testing.T) {
	svc := newTestSettingsService(newFakeSettingStore())

	settings, err := svc.GetSettings(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if settings.Telegram.BotToken != "" {
		t.Fatalf("botToken = %q, want empty", settings.Telegram.BotToken)
	}
}

func TestUpdateSettingsPlaceholderKeepsToken(t *testing.T) {
	store := newFakeSettingStore()
	svc := newTestSettingsService(store)

	if err := svc.SetSetting(context.Background(), models.SettingTelegramBotToken, "original-token"); err != nil {
		t.Fatal(err)
	}
	storedBefore := store.values[models.SettingTelegramBotToken]

	err := svc.UpdateSettings(context.Background(), &models.Settings{
		Telegram: models.TelegramSettings{
			Enabled:  true,
			BotToken: models.HiddenTokenPlaceholder,
			ChatID:   "-100123",
		},
		System: models.SystemSettings{DefaultPriority: "high"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if store.values[models.SettingTelegramBotToken] != storedBefore {
		t.Fatal("placeholder overwrote the stored token")
	}
	got, err := svc.GetSetting(context.Background(), models.SettingTelegramBotToken)
	if err != nil {
		t.Fatal(err)
	}
	if got != "original-token" {
		t.Fatalf("token = %q, want original", got)
	}
	if store.values[models.SettingTelegramChatID] != "-100123" {
		t.Fatalf("chatId = %q", store.values[models.SettingTelegramChatID])
	}
}

func TestUpdateSettingsNewTokenReplaces(t *testing.T) {
	store := newFakeSettingStore()
	svc := newTestSettingsService(store)

	if err := svc.SetSetting(context.Background(), models.SettingTelegramBotToken, "old"); err != nil {
		t.Fatal(err)
	}
	if err := svc.UpdateSettings(context.Background(), &models.Settings{
		Telegram: models.TelegramSettings{BotToken: "new-token"},
	}); err != nil {
		t.Fatal(err)
	}

	got, err := svc.GetSetting(context.Background(), models.SettingTelegramBotToken)
	if err != nil {
		t.Fatal(err)
	}
	if got != "new-token" {
		t.Fatalf("token = %q, want new-token", got)
	}
}

func TestUpdateSettingsInvalidDefaultPriority(t *testing.T) {
	svc := newTestSettingsService(newFakeSettingStore())
	err := svc.UpdateSettings(context.Background(), &models.Settings{
		System: models.SystemSettings{DefaultPriority: "whenever"},
	})
	if err == nil {
		t.Fatal("expected invalid priority error")
	}
}

func TestInitializeDefaultsIdempotent(t *testing.T) {
	store := newFakeSettingStore()
	svc := newTestSettingsService(store)

	if err := svc.InitializeDefaultSettings(context.Background()); err != nil {
		t.Fatal(err)
	}
	if store.values[models.SettingSiteName] != "Repair System" {
		t.Fatalf("siteName default = %q", store.values[models.SettingSiteName])
	}
	if store.values[models.SettingDefaultPriority] != "medium" {
		t.Fatalf("defaultPriority default = %q", store.values[models.SettingDefaultPriority])
	}

	// Existing values survive a second run.
	store.values[models.SettingSiteName] = "Custom Name"
	if err := svc.InitializeDefaultSettings(context.Background()); err != nil {
		t.Fatal(err)
	}
	if store.values[models.SettingSiteName] != "Custom Name" {
		t.Fatal("defaults overwrote an existing value")
	}
}
