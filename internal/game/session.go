package game

import (
	"sort"

	"github.com/karlos-perez/hundred-to-one/internal/models"
)

// State tags the two live phases of a session. A session in a terminal
// phase does not exist: ending a game removes it from the registry.
type State int

const (
	// AwaitingRespondent: nobody holds the answer slot; the claim
	// button is on offer.
	AwaitingRespondent State = iota + 1
	// AwaitingAnswer: exactly one respondent may submit guesses.
	AwaitingAnswer
)

// Slot is one line of the six-slot reveal board.
type Slot struct {
	Revealed bool
	Missed   bool // revealed at game end, never guessed
	Title    string
	Score    int
}

// Session is the in-memory state of one chat's active game.
type Session struct {
	ChatID     int64
	GameID     uint
	Title      string
	Answers    map[string]int
	Board      [models.AnswersPerQuestion]Slot
	State      State
	Respondent int64 // telegram user id, 0 when nobody holds the slot
	Guessed    map[string]bool

	// RespondentName mirrors the respondent's display name so prompts
	// can be re-issued after a restart without another lookup.
	RespondentName string

	// PromptID is the id of the last question message the bot posted,
	// kept so the claim button can be stripped off it.
	PromptID int
}

// NewSession builds a fresh session for a started game. All board
// slots begin hidden. Answer titles are keyed in normalized form so
// guesses compare directly against them.
func NewSession(chatID int64, gameID uint, question *models.Question) *Session {
	answers := make(map[string]int, len(question.Answers))
	for _, a := range question.Answers {
		answers[Normalize(a.Title)] = a.Score
	}
	return &Session{
		ChatID:  chatID,
		GameID:  gameID,
		Title:   question.Title,
		Answers: answers,
		State:   AwaitingRespondent,
		Guessed: make(map[string]bool, models.AnswersPerQuestion),
	}
}

// SetRespondent hands the answer slot to a user.
func (s *Session) SetRespondent(userID int64) {
	s.Respondent = userID
	s.State = AwaitingAnswer
}

// ClearRespondent returns the session to the claim phase.
func (s *Session) ClearRespondent() {
	s.Respondent = 0
	s.State = AwaitingRespondent
}

// Reveal marks an answer guessed and places it into the first hidden
// board slot. Calling it twice for one answer is a bug upstream; the
// guessed set stays a subset of the answer keys either way.
func (s *Session) Reveal(answer string, score int) {
	if s.Guessed[answer] {
		return
	}
	s.Guessed[answer] = true
	for i := range s.Board {
		if !s.Board[i].Revealed {
			s.Board[i] = Slot{Revealed: true, Title: answer, Score: score}
			return
		}
	}
}

// Complete reports whether all six answers have been guessed.
func (s *Session) Complete() bool {
	return len(s.Guessed) >= models.AnswersPerQuestion
}

// FillMissed reveals every remaining answer as missed, for the final
// board shown when a game ends early.
func (s *Session) FillMissed() {
	remaining := make([]string, 0, models.AnswersPerQuestion)
	for title := range s.Answers {
		if !s.Guessed[title] {
			remaining = append(remaining, title)
		}
	}
	// Stable order for the reveal
	sort.Strings(remaining)

	idx := 0
	for i := range s.Board {
		if s.Board[i].Revealed {
			continue
		}
		if idx >= len(remaining) {
			break
		}
		title := remaining[idx]
		s.Board[i] = Slot{Revealed: true, Missed: true, Title: title, Score: s.Answers[title]}
		idx++
	}
}

// Registry is the process-local table of chats with an active game.
// It is owned by the engine's dispatcher goroutine and must not be
// shared; injecting it keeps sessions testable in isolation.
type Registry struct {
	sessions map[int64]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[int64]*Session)}
}

// Get returns the session for a chat, nil when the chat is idle.
func (r *Registry) Get(chatID int64) *Session {
	return r.sessions[chatID]
}

func (r *Registry) Put(s *Session) {
	r.sessions[s.ChatID] = s
}

func (r *Registry) Delete(chatID int64) {
	delete(r.sessions, chatID)
}

func (r *Registry) Len() int {
	return len(r.sessions)
}

// Chats returns the chat ids with a live session, in no fixed order.
func (r *Registry) Chats() []int64 {
	ids := make([]int64, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	return ids
}
