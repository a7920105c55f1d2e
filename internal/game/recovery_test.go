package game

import (
	"testing"
	"time"

	"github.com/karlos-perez/hundred-to-one/internal/models"
)

// seedInterruptedGame plants the rows a crash would leave behind: an
// active game, a respondent with attempts left and two recorded
// correct answers.
func seedInterruptedGame(store *fakeStore) *models.Game {
	user, _ := store.EnsureUser(alice, aliceName)
	g, _ := store.CreateGame(testChat, store.question.ID, time.Now().Add(-time.Minute))
	p, _ := store.CreateParticipant(user.ID, g.ID, 3)
	_ = store.AppendAnswer(p.ID, g.ID, "paris", true)
	_ = store.AppendAnswer(p.ID, g.ID, "atlantis", false)
	_ = store.AppendAnswer(p.ID, g.ID, "london", true)
	_ = store.UpdateParticipantScore(p.ID, 70)
	_ = store.UpdateParticipantAttempts(p.ID, 2)
	return g
}

func TestRecover_RebuildsSession(t *testing.T) {
	e, store, tr := newTestEngine(t)
	g := seedInterruptedGame(store)

	if err := e.Recover(); err != nil {
		t.Fatal(err)
	}

	sess := e.registry.Get(testChat)
	if sess == nil {
		t.Fatal("no session recovered")
	}
	if sess.GameID != g.ID {
		t.Errorf("session game = %d, want %d", sess.GameID, g.ID)
	}
	if !sess.Guessed["paris"] || !sess.Guessed["london"] || len(sess.Guessed) != 2 {
		t.Errorf("guessed set = %v", sess.Guessed)
	}
	if sess.State != AwaitingAnswer || sess.Respondent != alice {
		t.Errorf("respondent not restored: state %d respondent %d", sess.State, sess.Respondent)
	}
	if !tr.sentContaining(aliceName) {
		t.Error("respondent prompt not re-issued")
	}
	if store.games[g.ID].Status != models.GameStatusActive {
		t.Errorf("game status = %s, want still active", store.games[g.ID].Status)
	}
}

func TestRecover_PlayResumesAfterRestart(t *testing.T) {
	e, store, _ := newTestEngine(t)
	g := seedInterruptedGame(store)
	if err := e.Recover(); err != nil {
		t.Fatal(err)
	}

	// The restored respondent repeats an already-revealed answer
	e.Handle(message(alice, aliceName, "london"))

	p, _ := store.Participant(store.users[alice].ID, g.ID)
	if p.Score != 70 {
		t.Errorf("score = %d, want 70 (repeat must not score again)", p.Score)
	}
	if p.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", p.Attempts)
	}

	// Then finds the remaining four
	for _, guess := range []string{"berlin", "rome", "madrid", "oslo"} {
		e.Handle(message(alice, aliceName, guess))
	}
	if store.games[g.ID].Status != models.GameStatusFinished {
		t.Errorf("game status = %s, want finished", store.games[g.ID].Status)
	}
}

func TestRecover_NoRespondent(t *testing.T) {
	e, store, tr := newTestEngine(t)
	user, _ := store.EnsureUser(alice, aliceName)
	g, _ := store.CreateGame(testChat, store.question.ID, time.Now())
	p, _ := store.CreateParticipant(user.ID, g.ID, 3)
	_ = store.AppendAnswer(p.ID, g.ID, "paris", true)
	_ = store.UpdateParticipantAttempts(p.ID, 0)

	if err := e.Recover(); err != nil {
		t.Fatal(err)
	}

	sess := e.registry.Get(testChat)
	if sess == nil {
		t.Fatal("no session recovered")
	}
	if sess.State != AwaitingRespondent || sess.Respondent != 0 {
		t.Errorf("state %d respondent %d, want an open slot", sess.State, sess.Respondent)
	}
	board := tr.lastSent()
	if board.keyboard != KeyboardAnswer {
		t.Errorf("board keyboard = %d, want KeyboardAnswer", board.keyboard)
	}
	if sess.PromptID == 0 {
		t.Error("prompt id not recorded for the re-issued board")
	}
}

func TestRecover_DuplicateActiveRows(t *testing.T) {
	e, store, _ := newTestEngine(t)
	older, _ := store.CreateGame(testChat, store.question.ID, time.Now().Add(-time.Hour))
	newer, _ := store.CreateGame(testChat, store.question.ID, time.Now())

	if err := e.Recover(); err != nil {
		t.Fatal(err)
	}

	sess := e.registry.Get(testChat)
	if sess == nil || sess.GameID != older.ID {
		t.Fatalf("session = %+v, want the oldest game %d", sess, older.ID)
	}
	if store.games[newer.ID].Status != models.GameStatusError {
		t.Errorf("duplicate status = %s, want error", store.games[newer.ID].Status)
	}
	if store.games[newer.ID].DateEnd == nil {
		t.Error("duplicate not stamped with an end time")
	}
	if store.games[older.ID].Status != models.GameStatusActive {
		t.Errorf("kept game status = %s, want active", store.games[older.ID].Status)
	}
}

func TestRecover_Idempotent(t *testing.T) {
	e, store, _ := newTestEngine(t)
	g := seedInterruptedGame(store)

	if err := e.Recover(); err != nil {
		t.Fatal(err)
	}
	first := e.registry.Get(testChat)

	if err := e.Recover(); err != nil {
		t.Fatal(err)
	}

	if e.registry.Len() != 1 {
		t.Errorf("registry has %d sessions, want 1", e.registry.Len())
	}
	if e.registry.Get(testChat) != first {
		t.Error("second recovery replaced the session")
	}
	if store.games[g.ID].Status != models.GameStatusActive {
		t.Errorf("game status = %s, want still active", store.games[g.ID].Status)
	}
}

func TestRecover_NothingToDo(t *testing.T) {
	e, _, tr := newTestEngine(t)

	if err := e.Recover(); err != nil {
		t.Fatal(err)
	}

	if e.registry.Len() != 0 || len(tr.sent) != 0 {
		t.Error("recovery invented work on an empty store")
	}
}

func TestReconstructSession_UnknownAnswerSkipped(t *testing.T) {
	q := capitalsQuestion()
	g := &models.Game{ID: 5, ChatID: testChat, Question: *q}
	correct := []models.GameAnswer{
		{GameID: 5, Answer: "paris", IsCorrect: true},
		{GameID: 5, Answer: "tunguska", IsCorrect: true}, // stale row, not in the answer set
		{GameID: 5, Answer: "paris", IsCorrect: true},    // duplicate row
	}

	sess := reconstructSession(g, correct, nil)

	if len(sess.Guessed) != 1 || !sess.Guessed["paris"] {
		t.Errorf("guessed set = %v, want only paris", sess.Guessed)
	}
	if sess.Board[1].Revealed {
		t.Error("stale rows consumed board slots")
	}
}
