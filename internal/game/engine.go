package game

import (
	"context"
	"strings"
	"time"

	"github.com/karlos-perez/hundred-to-one/internal/models"
	"github.com/karlos-perez/hundred-to-one/pkg/logger"
)

// Engine runs the per-chat game state machine. One dispatcher goroutine
// drains the event channel and handles each event to completion, so the
// registry is never touched by two handlers at once even though many
// chats progress interleaved.
type Engine struct {
	store     Store
	transport Transport
	registry  *Registry
	attempts  int
	events    chan Event
}

func NewEngine(store Store, transport Transport, registry *Registry, attempts int) *Engine {
	if attempts <= 0 {
		attempts = models.DefaultAttempts
	}
	return &Engine{
		store:     store,
		transport: transport,
		registry:  registry,
		attempts:  attempts,
		events:    make(chan Event, 256),
	}
}

// Enqueue hands an inbound event to the dispatcher.
func (e *Engine) Enqueue(ev Event) {
	e.events <- ev
}

// Run drains the event stream until the context is cancelled. An event
// being handled always runs to completion; cancellation is only
// observed between events.
func (e *Engine) Run(ctx context.Context) {
	logger.Info("Game engine started")
	for {
		select {
		case <-ctx.Done():
			logger.Info("Game engine stopped")
			return
		case ev := <-e.events:
			e.Handle(ev)
		}
	}
}

// Handle processes one event against the session registry.
func (e *Engine) Handle(ev Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic while handling event", "chat_id", ev.ChatID, "panic", r)
			if sess := e.registry.Get(ev.ChatID); sess != nil {
				e.failGame(sess)
			}
		}
	}()

	if ev.ChatID == 0 || ev.UserID == 0 {
		logger.Warn("Dropping malformed event", "kind", ev.Kind)
		return
	}

	user, err := e.store.EnsureUser(ev.UserID, ev.UserName)
	if err != nil {
		logger.Error("Failed to resolve user, dropping event", "user_id", ev.UserID, "error", err)
		return
	}

	switch ev.Kind {
	case EventMessage:
		e.handleMessage(ev, user)
	case EventCallback:
		e.handleCallback(ev, user)
	default:
		logger.Warn("Dropping event of unknown kind", "kind", ev.Kind)
	}
}

func (e *Engine) handleMessage(ev Event, user *models.User) {
	text := strings.TrimSpace(ev.Text)
	sess := e.registry.Get(ev.ChatID)

	switch strings.ToLower(text) {
	case CommandGame:
		if sess == nil {
			e.transport.Send(ev.ChatID, msgInvite, KeyboardInvite)
		}
		return
	case CommandStop:
		if sess != nil {
			e.endGame(sess, user, models.GameStatusStopped)
		}
		return
	case CommandRules:
		e.transport.Send(ev.ChatID, msgRules, KeyboardStart)
		return
	}

	// Unrecognized commands are ignored silently
	if strings.HasPrefix(text, "/") {
		return
	}

	if sess == nil {
		return
	}

	if sess.State == AwaitingAnswer && ev.UserID == sess.Respondent {
		e.handleGuess(sess, ev, user)
		return
	}

	// Nobody else is authorized to talk during a game; ask the
	// transport to remove the stray message.
	e.transport.Delete(ev.ChatID, ev.MessageID)
}

func (e *Engine) handleCallback(ev Event, user *models.User) {
	sess := e.registry.Get(ev.ChatID)

	switch ev.Action {
	case ActionRules:
		e.transport.Send(ev.ChatID, msgRules, KeyboardStart)
	case ActionStart:
		if sess != nil {
			e.transport.Notify(ev.CallbackID, msgAlreadyRunning)
			return
		}
		e.startGame(ev)
	case ActionAnswer:
		e.claim(sess, ev, user)
	case ActionStop:
		if sess == nil {
			e.transport.Notify(ev.CallbackID, msgNoSession)
			return
		}
		e.endGame(sess, user, models.GameStatusStopped)
	default:
		logger.Debug("Ignoring unknown callback action", "action", ev.Action)
	}
}

// startGame draws a question, persists the game row and opens the
// session in AwaitingRespondent.
func (e *Engine) startGame(ev Event) {
	question, err := e.store.DrawQuestion()
	if err != nil {
		logger.Error("Failed to draw question", "chat_id", ev.ChatID, "error", err)
		e.transport.Send(ev.ChatID, msgFailure, KeyboardNone)
		return
	}
	if len(question.Answers) != models.AnswersPerQuestion {
		logger.Error("Drawn question is not playable", "question_id", question.ID)
		e.transport.Send(ev.ChatID, msgFailure, KeyboardNone)
		return
	}

	game, err := e.store.CreateGame(ev.ChatID, question.ID, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to create game", "chat_id", ev.ChatID, "error", err)
		e.transport.Send(ev.ChatID, msgFailure, KeyboardNone)
		return
	}

	sess := NewSession(ev.ChatID, game.ID, question)
	e.registry.Put(sess)

	logger.Info("Game started", "chat_id", ev.ChatID, "game_id", game.ID, "question_id", question.ID)

	// Replace the invite under the pressed button, then post the board
	if ev.MessageID != 0 {
		e.transport.Edit(ev.ChatID, ev.MessageID, msgBegin, KeyboardNone)
	}
	sess.PromptID = e.transport.Send(ev.ChatID, formatBoard(sess), KeyboardAnswer)
}

// claim hands the respondent slot to the first eligible user who
// pressed the answer button.
func (e *Engine) claim(sess *Session, ev Event, user *models.User) {
	if sess == nil {
		e.transport.Notify(ev.CallbackID, msgNoSession)
		return
	}
	if sess.State == AwaitingAnswer {
		e.transport.Notify(ev.CallbackID, msgSlotTaken)
		return
	}

	participant, err := e.store.Participant(user.ID, sess.GameID)
	if err != nil {
		logger.Error("Failed to look up participant", "chat_id", ev.ChatID, "error", err)
		e.failGame(sess)
		return
	}
	if participant != nil {
		// Held the slot before; eligibility never comes back
		e.transport.Notify(ev.CallbackID, msgCannotAnswer)
		return
	}

	if _, err := e.store.CreateParticipant(user.ID, sess.GameID, e.attempts); err != nil {
		logger.Error("Failed to create participant", "chat_id", ev.ChatID, "error", err)
		e.failGame(sess)
		return
	}

	sess.SetRespondent(ev.UserID)
	sess.RespondentName = user.FullName

	// Strip the answer button off the board message
	if sess.PromptID != 0 {
		e.transport.Edit(ev.ChatID, sess.PromptID, formatBoard(sess), KeyboardNone)
	}
	e.transport.Send(ev.ChatID, formatRespondent(user.FullName), KeyboardStop)
}

// handleGuess evaluates the respondent's message and applies scoring.
// Any store failure mid-scoring force-closes the game: partial progress
// cannot be resumed safely.
func (e *Engine) handleGuess(sess *Session, ev Event, user *models.User) {
	participant, err := e.store.Participant(user.ID, sess.GameID)
	if err != nil || participant == nil {
		logger.Error("Respondent has no participant row", "chat_id", ev.ChatID, "error", err)
		e.failGame(sess)
		return
	}

	guess := Normalize(ev.Text)
	verdict := Evaluate(guess, sess.Answers, sess.Guessed)

	if err := e.store.AppendAnswer(participant.ID, sess.GameID, guess, verdict.Correct); err != nil {
		logger.Error("Failed to record answer", "chat_id", ev.ChatID, "error", err)
		e.failGame(sess)
		return
	}

	if verdict.Correct {
		if err := e.store.UpdateParticipantScore(participant.ID, participant.Score+verdict.Score); err != nil {
			logger.Error("Failed to update score", "chat_id", ev.ChatID, "error", err)
			e.failGame(sess)
			return
		}
		sess.Reveal(guess, verdict.Score)

		e.transport.Send(ev.ChatID, formatCorrect(participant.User.FullName, verdict.Score), KeyboardNone)

		if sess.Complete() {
			e.endGame(sess, user, models.GameStatusFinished)
			return
		}

		sess.PromptID = e.transport.Send(ev.ChatID, formatBoard(sess), KeyboardStop)
		e.transport.Send(ev.ChatID, formatRespondent(participant.User.FullName), KeyboardStop)
		return
	}

	attempts := participant.Attempts - 1
	if attempts < 0 {
		attempts = 0
	}
	if err := e.store.UpdateParticipantAttempts(participant.ID, attempts); err != nil {
		logger.Error("Failed to update attempts", "chat_id", ev.ChatID, "error", err)
		e.failGame(sess)
		return
	}

	if attempts > 0 {
		e.transport.Send(ev.ChatID, formatIncorrect(attempts), KeyboardStop)
		return
	}

	// Out of attempts: the slot opens up again, the player stays out
	sess.ClearRespondent()
	sess.RespondentName = ""
	e.transport.Send(ev.ChatID, formatLose(participant.User.FullName, participant.Score), KeyboardNone)
	sess.PromptID = e.transport.Send(ev.ChatID, formatBoard(sess), KeyboardAnswer)
}

// endGame closes a session in a terminal status, reveals the full
// board and invites the chat to play again.
func (e *Engine) endGame(sess *Session, byUser *models.User, status string) {
	sess.FillMissed()

	if err := e.store.UpdateGameStatus(sess.GameID, status, time.Now().UTC()); err != nil {
		logger.Error("Failed to persist game status", "game_id", sess.GameID, "status", status, "error", err)
		status = models.GameStatusError
	}

	scoreboard, err := e.store.Scoreboard(sess.GameID)
	if err != nil {
		logger.Error("Failed to load scoreboard", "game_id", sess.GameID, "error", err)
	}

	e.registry.Delete(sess.ChatID)
	logger.Info("Game ended", "chat_id", sess.ChatID, "game_id", sess.GameID, "status", status)

	stoppedBy := ""
	if byUser != nil {
		stoppedBy = byUser.FullName
	}
	e.transport.Send(sess.ChatID, formatEnd(status, stoppedBy, scoreboard), KeyboardNone)
	if status != models.GameStatusError {
		e.transport.Send(sess.ChatID, formatBoard(sess), KeyboardNone)
	}
	e.transport.Send(sess.ChatID, msgInvite, KeyboardInvite)
}

// failGame is the fail-fast path for dependent-service failures: the
// game is closed with status error, players get a generic notice and a
// fresh invite. No retry.
func (e *Engine) failGame(sess *Session) {
	if err := e.store.UpdateGameStatus(sess.GameID, models.GameStatusError, time.Now().UTC()); err != nil {
		logger.Error("Failed to mark game as errored", "game_id", sess.GameID, "error", err)
	}
	e.registry.Delete(sess.ChatID)
	logger.Warn("Game force-closed", "chat_id", sess.ChatID, "game_id", sess.GameID)

	e.transport.Send(sess.ChatID, msgFailure, KeyboardNone)
	e.transport.Send(sess.ChatID, msgInvite, KeyboardInvite)
}
