package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/karlos-perez/hundred-to-one/internal/game"
	"github.com/karlos-perez/hundred-to-one/pkg/logger"
)

// Sender implements the engine's outbound surface on top of the Bot
// API. Send failures are logged and swallowed: the engine's state has
// already moved on and a lost chat message is recoverable by the next
// prompt.
type Sender struct {
	api *tgbotapi.BotAPI
}

func NewSender(api *tgbotapi.BotAPI) *Sender {
	return &Sender{api: api}
}

func markup(keyboard game.Keyboard) *tgbotapi.InlineKeyboardMarkup {
	var m tgbotapi.InlineKeyboardMarkup
	switch keyboard {
	case game.KeyboardInvite:
		m = InviteKeyboard()
	case game.KeyboardStart:
		m = StartKeyboard()
	case game.KeyboardAnswer:
		m = AnswerKeyboard()
	case game.KeyboardStop:
		m = StopKeyboard()
	default:
		return nil
	}
	return &m
}

// Send posts a message and returns its id, 0 on failure.
func (s *Sender) Send(chatID int64, text string, keyboard game.Keyboard) int {
	msg := tgbotapi.NewMessage(chatID, text)
	if m := markup(keyboard); m != nil {
		msg.ReplyMarkup = m
	}
	sent, err := s.api.Send(msg)
	if err != nil {
		logger.Error("Failed to send message", "chat_id", chatID, "error", err)
		return 0
	}
	return sent.MessageID
}

// Edit replaces the text and keyboard of a previously sent message.
func (s *Sender) Edit(chatID int64, messageID int, text string, keyboard game.Keyboard) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ReplyMarkup = markup(keyboard)
	if _, err := s.api.Send(edit); err != nil {
		logger.Error("Failed to edit message", "chat_id", chatID, "message_id", messageID, "error", err)
	}
}

// Delete removes a chat message. Requires the bot to be a group admin;
// failures are expected when it is not.
func (s *Sender) Delete(chatID int64, messageID int) {
	if _, err := s.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		logger.Debug("Failed to delete message", "chat_id", chatID, "message_id", messageID, "error", err)
	}
}

// Notify answers a callback query with an ephemeral popup visible only
// to the user who pressed the button.
func (s *Sender) Notify(callbackID, text string) {
	if _, err := s.api.Request(tgbotapi.NewCallbackWithAlert(callbackID, text)); err != nil {
		logger.Debug("Failed to answer callback", "callback_id", callbackID, "error", err)
	}
}
