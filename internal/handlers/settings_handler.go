package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/khunmostz/Repair-Management-System/internal/models"
	"github.com/khunmostz/Repair-Management-System/internal/services"
	"github.com/khunmostz/Repair-Management-System/pkg/utils"
)

type SettingsHandler struct {
	Service  *services.SettingsService
	Telegram *services.TelegramService
}

func NewSettingsHandler(s *services.SettingsService, telegram *services.TelegramService) *SettingsHandler {
	return &SettingsHandler{Service: s, Telegram: telegram}
}

// GetSettings returns the settings singleton with the bot token masked
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Service.GetSettings(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, settings)
}

// UpdateSettings replaces the settings singleton wholesale
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Service.UpdateSettings(r.Context(), &settings); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.Service.GetSettings(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, updated)
}

// TestTelegram sends a probe message with the supplied credentials.
// Works regardless of the enabled flag so admins can verify before
// switching notifications on.
func (h *SettingsHandler) TestTelegram(w http.ResponseWriter, r *http.Request) {
	var req models.TestTelegramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Telegram.SendTest(r.Context(), req.BotToken, req.ChatID); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "Test message sent"})
}
