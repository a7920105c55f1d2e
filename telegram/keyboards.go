package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/karlos-perez/hundred-to-one/internal/game"
)

// Button labels
const (
	BtnStart  = "🚀 Start the game"
	BtnRules  = "📖 Rules"
	BtnAnswer = "🙋 Answer"
	BtnStop   = "🛑 Stop"
)

// InviteKeyboard offers to start a game or read the rules.
func InviteKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(BtnStart, game.ActionStart),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(BtnRules, game.ActionRules),
		),
	)
}

// StartKeyboard carries only the start button, used under the rules.
func StartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(BtnStart, game.ActionStart),
		),
	)
}

// AnswerKeyboard offers the claim button plus stop.
func AnswerKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(BtnAnswer, game.ActionAnswer),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(BtnStop, game.ActionStop),
		),
	)
}

// StopKeyboard carries only the stop button, shown while someone holds
// the answer slot.
func StopKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(BtnStop, game.ActionStop),
		),
	)
}
