package game

import (
	"time"

	"github.com/karlos-perez/hundred-to-one/internal/models"
)

// EventKind tags inbound transport events.
type EventKind string

const (
	EventMessage  EventKind = "new_message"
	EventCallback EventKind = "button_event"
)

// Chat commands understood by the engine.
const (
	CommandGame  = "/game"
	CommandStop  = "/stop"
	CommandRules = "/rules"
)

// Callback actions carried in button payloads.
const (
	ActionRules  = "game_rules"
	ActionStart  = "start_game"
	ActionAnswer = "claim_answer"
	ActionStop   = "stop_game"
)

// Event is one normalized inbound update. The transport produces them;
// the engine consumes them one at a time.
type Event struct {
	Kind       EventKind `json:"kind"`
	ChatID     int64     `json:"chat_id"`
	UserID     int64     `json:"user_id"`
	UserName   string    `json:"user_name"`
	Text       string    `json:"text,omitempty"`
	Action     string    `json:"action,omitempty"`
	MessageID  int       `json:"message_id,omitempty"`
	CallbackID string    `json:"callback_id,omitempty"`
}

// Keyboard names the button set attached to an outbound message.
// Rendering is the transport's business.
type Keyboard int

const (
	KeyboardNone Keyboard = iota
	KeyboardInvite
	KeyboardStart
	KeyboardAnswer
	KeyboardStop
)

// Store is the persistence surface the engine requires.
type Store interface {
	EnsureUser(telegramID int64, fullName string) (*models.User, error)
	CreateGame(chatID int64, questionID uint, start time.Time) (*models.Game, error)
	UpdateGameStatus(gameID uint, status string, end time.Time) error
	ActiveGames() ([]models.Game, error)
	DrawQuestion() (*models.Question, error)
	Participant(userID, gameID uint) (*models.Participant, error)
	CreateParticipant(userID, gameID uint, attempts int) (*models.Participant, error)
	UpdateParticipantScore(participantID uint, score int) error
	UpdateParticipantAttempts(participantID uint, attempts int) error
	AppendAnswer(participantID, gameID uint, answer string, correct bool) error
	CorrectAnswers(gameID uint) ([]models.GameAnswer, error)
	RespondentCandidate(gameID uint) (*models.Participant, error)
	Scoreboard(gameID uint) ([]models.Participant, error)
}

// Transport is the outbound presentation surface the engine requires.
type Transport interface {
	Send(chatID int64, text string, keyboard Keyboard) int
	Edit(chatID int64, messageID int, text string, keyboard Keyboard)
	Delete(chatID int64, messageID int)
	// Notify shows an ephemeral notice to the user who pressed a button,
	// without posting anything to the chat.
	Notify(callbackID, text string)
}
