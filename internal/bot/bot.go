// Package bot wraps the Telegram Bot API: parsing webhook updates,
// answering /start with the mini-app launch button, and delivering
// best-effort notifications.
package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"metagift-api/internal/logger"
)

// Bot sends messages on behalf of the shop. A nil *Bot is valid: every
// method degrades to a logged no-op, matching the "token not configured,
// skipping" behavior the frontend expects in development.
type Bot struct {
	api       *tgbotapi.BotAPI
	webAppURL string
}

// New creates a bot client. An empty token yields (nil, nil): the service
// runs without notifications.
func New(token, webAppURL string) (*Bot, error) {
	if token == "" {
		logger.Warn("bot token not configured, notifications disabled")
		return nil, nil
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	logger.Info("bot authorized", zap.String("username", api.Self.UserName))
	return &Bot{api: api, webAppURL: webAppURL}, nil
}

// Notify sends an HTML message to a chat. Delivery is best-effort: the
// caller logs and continues on failure.
func (b *Bot) Notify(chatID int64, html string) error {
	if b == nil {
		logger.Info("bot disabled, skipping notification", zap.Int64("chat_id", chatID))
		return nil
	}

	msg := tgbotapi.NewMessage(chatID, html)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(msg)
	return err
}

// HandleUpdate processes one inbound webhook update. Only the /start
// command gets a reply; everything else is ignored.
func (b *Bot) HandleUpdate(update tgbotapi.Update) {
	if b == nil || update.Message == nil {
		return
	}

	if update.Message.Text != "/start" {
		return
	}

	msg := tgbotapi.NewMessage(update.Message.Chat.ID, welcomeMessage)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = launchKeyboard{
		InlineKeyboard: [][]launchButton{{
			{Text: "🛍️ Открыть магазин", WebApp: webAppInfo{URL: b.webAppURL}},
		}},
	}

	if _, err := b.api.Send(msg); err != nil {
		logger.Error("failed to send welcome message",
			zap.Int64("chat_id", update.Message.Chat.ID), zap.Error(err))
	}
}

// The library predates web_app buttons, so the launch keyboard is
// marshalled from local types instead of tgbotapi's.
type launchKeyboard struct {
	InlineKeyboard [][]launchButton `json:"inline_keyboard"`
}

type launchButton struct {
	Text   string     `json:"text"`
	WebApp webAppInfo `json:"web_app"`
}

type webAppInfo struct {
	URL string `json:"url"`
}

const welcomeMessage = `🎁 <b>Добро пожаловать в MetaGift!</b>

<b>Mini App для покупки и дарения уникальных подарков прямо в Telegram!</b>

🌟 <b>Возможности приложения:</b>
• 🛍️ Покупка эксклюзивных цифровых подарков
• 🎁 Передача подарков друзьям с личными сообщениями
• ⭐ Пополнение баланса Telegram Stars
• 👥 Реферальная программа с бонусами
• 📦 Личный инвентарь с коллекцией подарков
• 📊 Статистика покупок и активности

💎 <b>О Mini App:</b>
Полнофункциональное веб-приложение, интегрированное в Telegram. Никаких установок - все работает прямо в мессенджере!

Нажмите кнопку ниже, чтобы открыть магазин! 👇`
