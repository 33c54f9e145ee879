package handler

import (
	"encoding/json"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"metagift-api/internal/bot"
	"metagift-api/internal/logger"
)

// WebhookHandler receives inbound Telegram updates.
type WebhookHandler struct {
	bot *bot.Bot
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(b *bot.Bot) *WebhookHandler {
	return &WebhookHandler{bot: b}
}

// Receive handles POST /webhook. Telegram retries on anything but 200,
// so the reply is 200 OK unconditionally, even for updates that fail to
// parse.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		logger.Warn("undecodable webhook update", zap.Error(err))
	} else {
		h.bot.HandleUpdate(update)
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
