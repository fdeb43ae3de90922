package services

import (
	"context"
	"fmt"
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/khunmostz/Repair-Management-System/internal/metrics"
	"github.com/khunmostz/Repair-Management-System/internal/models"
)

// TelegramService sends repair lifecycle notifications to a configured
// chat. Delivery is best effort: failures are logged and counted, never
// surfaced to the request that triggered them.
type TelegramService struct {
	Settings *SettingsService
}

func NewTelegramService(settings *SettingsService) *TelegramService {
	return &TelegramService{Settings: settings}
}

func (s *TelegramService) send(ctx context.Context, event, text string) {
	if !s.Settings.GetBoolSetting(ctx, models.SettingTelegramEnabled) {
		return
	}
	token, err := s.Settings.GetSetting(ctx, models.SettingTelegramBotToken)
	if err != nil || token == "" {
		return
	}
	chatID := s.Settings.GetSettingWithDefault(ctx, models.SettingTelegramChatID, "")
	if chatID == "" {
		return
	}

	if err := sendMessage(token, chatID, text); err != nil {
		log.Printf("[Telegram] %s notification failed: %v", event, err)
		metrics.NotificationsSent.WithLabelValues(event, "error").Inc()
		return
	}
	metrics.NotificationsSent.WithLabelValues(event, "ok").Inc()
}

func sendMessage(token, chatID, text string) error {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return fmt.Errorf("telegram auth failed: %w", err)
	}

	var msg tgbotapi.MessageConfig
	if id, err := strconv.ParseInt(chatID, 10, 64); err == nil {
		msg = tgbotapi.NewMessage(id, text)
	} else {
		msg = tgbotapi.NewMessageToChannel(chatID, text)
	}
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send failed: %w", err)
	}
	return nil
}

// SendTest probes the given credentials directly, bypassing the enabled
// flag and stored settings. Used by the settings screen's test button.
func (s *TelegramService) SendTest(ctx context.Context, botToken, chatID string) error {
	if botToken == "" || botToken == models.HiddenTokenPlaceholder {
		stored, err := s.Settings.GetSetting(ctx, models.SettingTelegramBotToken)
		if err != nil || stored == "" {
			return fmt.Errorf("no bot token configured")
		}
		botToken = stored
	}
	if chatID == "" {
		chatID = s.Settings.GetSettingWithDefault(ctx, models.SettingTelegramChatID, "")
	}
	if chatID == "" {
		return fmt.Errorf("no chat id configured")
	}
	return sendMessage(botToken, chatID, "✅ Test message: Telegram notifications are working.")
}

func (s *TelegramService) NotifyNewRequest(ctx context.Context, req *models.RepairRequest) {
	if !s.Settings.GetBoolSetting(ctx, models.SettingTelegramNotifyNewRequest) {
		return
	}
	requester := ""
	if req.Requester != nil {
		requester = req.Requester.FullName
	}
	text := fmt.Sprintf("🆕 <b>New repair request</b>\n#%d %s\nLocation: %s\nPriority: %s\nRequester: %s",
		req.ID, req.Title, req.Location, req.Priority, requester)
	s.send(ctx, "new_request", text)
}

func (s *TelegramService) NotifyStatusChange(ctx context.Context, req *models.RepairRequest, oldStatus models.RepairStatus) {
	if !s.Settings.GetBoolSetting(ctx, models.SettingTelegramNotifyStatusChange) {
		return
	}
	text := fmt.Sprintf("🔄 <b>Status changed</b>\n#%d %s\n%s → %s",
		req.ID, req.Title, oldStatus, req.Status)
	s.send(ctx, "status_change", text)
}

func (s *TelegramService) NotifyAssignment(ctx context.Context, req *models.RepairRequest) {
	if !s.Settings.GetBoolSetting(ctx, models.SettingTelegramNotifyAssignment) {
		return
	}
	technician := ""
	if req.Technician != nil {
		technician = req.Technician.FullName
	}
	text := fmt.Sprintf("👷 <b>Technician assigned</b>\n#%d %s\nTechnician: %s",
		req.ID, req.Title, technician)
	s.send(ctx, "assignment", text)
}

func (s *TelegramService) NotifyCompletion(ctx context.Context, req *models.RepairRequest) {
	if !s.Settings.GetBoolSetting(ctx, models.SettingTelegramNotifyCompletion) {
		return
	}
	text := fmt.Sprintf("✅ <b>Repair completed</b>\n#%d %s\nCost: %.2f",
		req.ID, req.Title, req.Cost)
	s.send(ctx, "completion", text)
}

func (s *TelegramService) NotifyRejection(ctx context.Context, req *models.RepairRequest) {
	if !s.Settings.GetBoolSetting(ctx, models.SettingTelegramNotifyStatusChange) {
		return
	}
	text := fmt.Sprintf("❌ <b>Repair rejected</b>\n#%d %s\nReason: %s",
		req.ID, req.Title, req.RejectionReason)
	s.send(ctx, "rejection", text)
}
