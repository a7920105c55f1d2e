package game

import (
	"time"

	"github.com/karlos-perez/hundred-to-one/internal/models"
	"github.com/karlos-perez/hundred-to-one/pkg/logger"
)

// Recover rebuilds sessions for every game left active by a previous
// process. It must run before the event stream opens. Active games are
// scanned oldest first; if a chat somehow has more than one active row
// the oldest wins and the newer duplicates are closed as errored.
func (e *Engine) Recover() error {
	games, err := e.store.ActiveGames()
	if err != nil {
		return err
	}
	if len(games) == 0 {
		logger.Info("No active games to recover")
		return nil
	}

	recovered := make([]int64, 0, len(games))
	for i := range games {
		g := &games[i]

		if existing := e.registry.Get(g.ChatID); existing != nil {
			if existing.GameID == g.ID {
				// Already reconstructed; rerunning recovery is a no-op
				continue
			}
			logger.Warn("Duplicate active game, closing as errored", "chat_id", g.ChatID, "game_id", g.ID)
			if err := e.store.UpdateGameStatus(g.ID, models.GameStatusError, time.Now().UTC()); err != nil {
				logger.Error("Failed to close duplicate game", "game_id", g.ID, "error", err)
			}
			continue
		}

		correct, err := e.store.CorrectAnswers(g.ID)
		if err != nil {
			logger.Error("Failed to load answers for recovery", "game_id", g.ID, "error", err)
			e.closeUnrecoverable(g)
			continue
		}
		respondent, err := e.store.RespondentCandidate(g.ID)
		if err != nil {
			logger.Error("Failed to load respondent for recovery", "game_id", g.ID, "error", err)
			e.closeUnrecoverable(g)
			continue
		}

		sess := reconstructSession(g, correct, respondent)
		e.registry.Put(sess)
		recovered = append(recovered, g.ChatID)
		logger.Info("Recovered game", "chat_id", g.ChatID, "game_id", g.ID, "revealed", len(sess.Guessed))
	}

	// Re-issue the prompt each chat was waiting on so play can resume
	for _, chatID := range recovered {
		sess := e.registry.Get(chatID)
		if sess.State == AwaitingAnswer {
			e.transport.Send(chatID, formatBoard(sess), KeyboardNone)
			e.transport.Send(chatID, formatRespondent(sess.RespondentName), KeyboardStop)
		} else {
			sess.PromptID = e.transport.Send(chatID, formatBoard(sess), KeyboardAnswer)
		}
	}

	logger.Info("Recovery finished", "sessions", e.registry.Len())
	return nil
}

// reconstructSession rebuilds a session purely from persisted rows.
// Recorded correct guesses are replayed onto the board in the order
// they were given; a participant with attempts left takes the slot
// back, otherwise the chat returns to the claim phase.
func reconstructSession(g *models.Game, correct []models.GameAnswer, respondent *models.Participant) *Session {
	sess := NewSession(g.ChatID, g.ID, &g.Question)

	for i := range correct {
		guess := Normalize(correct[i].Answer)
		score, ok := sess.Answers[guess]
		if !ok || sess.Guessed[guess] {
			continue
		}
		sess.Reveal(guess, score)
	}

	if respondent != nil {
		sess.SetRespondent(respondent.User.TelegramID)
		sess.RespondentName = respondent.User.FullName
	}
	return sess
}

func (e *Engine) closeUnrecoverable(g *models.Game) {
	if err := e.store.UpdateGameStatus(g.ID, models.GameStatusError, time.Now().UTC()); err != nil {
		logger.Error("Failed to close unrecoverable game", "game_id", g.ID, "error", err)
	}
	e.transport.Send(g.ChatID, msgFailure, KeyboardNone)
	e.transport.Send(g.ChatID, msgInvite, KeyboardInvite)
}
