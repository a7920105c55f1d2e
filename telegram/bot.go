package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/karlos-perez/hundred-to-one/internal/config"
	"github.com/karlos-perez/hundred-to-one/internal/game"
	"github.com/karlos-perez/hundred-to-one/pkg/logger"
)

// Bot long-polls the Telegram API, normalizes updates into game events
// and hands them to the sink. The sink is either the engine's queue or
// a broker publisher; the bot does not care which.
type Bot struct {
	api    *tgbotapi.BotAPI
	config *config.Config
	sink   func(game.Event)
}

func InitBot(cfg *config.Config, sink func(game.Event)) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	if cfg.AppEnv == "development" {
		api.Debug = true
	}

	logger.Info("Authorized on account", "username", api.Self.UserName)

	return &Bot{api: api, config: cfg, sink: sink}, nil
}

// Sender returns the outbound transport bound to this bot's API client.
func (b *Bot) Sender() *Sender {
	return NewSender(b.api)
}

// Run consumes the update stream until the context is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	logger.Info("Listening for updates")
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			logger.Info("Update listener stopped")
			return
		case update, ok := <-updates:
			if !ok {
				logger.Warn("Update channel closed")
				return
			}
			if ev, ok := normalize(update, b.api.Self.UserName); ok {
				b.sink(ev)
			}
		}
	}
}

// normalize maps a raw update onto the engine's event shape. Updates
// without a game meaning (joins, stickers, edits) are dropped here so
// the engine only ever sees messages and button presses.
func normalize(update tgbotapi.Update, botName string) (game.Event, bool) {
	if update.CallbackQuery != nil {
		cb := update.CallbackQuery
		if cb.Message == nil || cb.From == nil {
			return game.Event{}, false
		}
		return game.Event{
			Kind:       game.EventCallback,
			ChatID:     cb.Message.Chat.ID,
			UserID:     cb.From.ID,
			UserName:   displayName(cb.From),
			Action:     cb.Data,
			MessageID:  cb.Message.MessageID,
			CallbackID: cb.ID,
		}, true
	}

	if update.Message != nil {
		msg := update.Message
		if msg.From == nil || msg.From.IsBot || msg.Text == "" {
			return game.Event{}, false
		}
		return game.Event{
			Kind:      game.EventMessage,
			ChatID:    msg.Chat.ID,
			UserID:    msg.From.ID,
			UserName:  displayName(msg.From),
			Text:      stripMention(msg.Text, botName),
			MessageID: msg.MessageID,
		}, true
	}

	return game.Event{}, false
}

// stripMention drops the "@botname" suffix group clients append to
// commands, so "/game@hundred_bot" routes like "/game".
func stripMention(text, botName string) string {
	if botName == "" {
		return text
	}
	return strings.Replace(text, "@"+botName, "", 1)
}

func displayName(u *tgbotapi.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.UserName
	}
	return name
}
