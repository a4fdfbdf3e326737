package notifier

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"coldstart/internal/config"
)

// Bot pushes operator notifications to a Telegram chat: new tips and tips
// flagged by parents. A nil *Bot is a valid disabled notifier; all methods
// are nil-safe so callers never need to branch.
type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

// NewBot creates the Telegram notifier. Returns (nil, nil) when the notifier
// is disabled or the token is empty.
func NewBot(cfg *config.Config, logger *zap.Logger) (*Bot, error) {
	if !cfg.Notifier.Enabled || cfg.Notifier.TelegramBotToken == "" {
		logger.Info("Telegram notifier is disabled (notifier.enabled=false or token is empty)")
		return nil, nil
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.Notifier.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API: %w", err)
	}

	logger.Info("Telegram notifier authorized", zap.String("username", botAPI.Self.UserName))

	return &Bot{
		api:    botAPI,
		chatID: cfg.Notifier.OperatorChatID,
		logger: logger,
	}, nil
}

// TipPosted notifies operators that a new tip landed on one of their venues.
func (b *Bot) TipPosted(venueName, tipText string) {
	b.send(fmt.Sprintf("New tip for %s:\n%q", venueName, tipText))
}

// TipFlagged notifies operators that a tip crossed another flag.
func (b *Bot) TipFlagged(venueName string, tipID int64) {
	b.send(fmt.Sprintf("A tip for %s was flagged (tip #%d). Worth a look.", venueName, tipID))
}

func (b *Bot) send(text string) {
	if b == nil {
		return
	}
	msg := tgbotapi.NewMessage(b.chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send Telegram notification", zap.Error(err))
	}
}
