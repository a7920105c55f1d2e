package game

import (
	"testing"

	"github.com/karlos-perez/hundred-to-one/internal/models"
)

func capitalsQuestion() *models.Question {
	return &models.Question{
		ID:    1,
		Title: "Name a European capital",
		Answers: []models.Answer{
			{QuestionID: 1, Title: "paris", Score: 40},
			{QuestionID: 1, Title: "london", Score: 30},
			{QuestionID: 1, Title: "berlin", Score: 15},
			{QuestionID: 1, Title: "rome", Score: 10},
			{QuestionID: 1, Title: "madrid", Score: 3},
			{QuestionID: 1, Title: "oslo", Score: 2},
		},
	}
}

func TestNewSession(t *testing.T) {
	s := NewSession(100, 7, capitalsQuestion())

	if s.ChatID != 100 || s.GameID != 7 {
		t.Errorf("unexpected ids: chat %d game %d", s.ChatID, s.GameID)
	}
	if s.State != AwaitingRespondent {
		t.Errorf("new session state = %d, want AwaitingRespondent", s.State)
	}
	if len(s.Answers) != models.AnswersPerQuestion {
		t.Fatalf("answer map has %d entries, want %d", len(s.Answers), models.AnswersPerQuestion)
	}
	if s.Answers["paris"] != 40 {
		t.Errorf("paris score = %d, want 40", s.Answers["paris"])
	}
	for i, slot := range s.Board {
		if slot.Revealed {
			t.Errorf("slot %d of a fresh board is revealed", i)
		}
	}
}

func TestNewSession_NormalizesAnswerTitles(t *testing.T) {
	q := capitalsQuestion()
	q.Answers[0].Title = "  PARIS "

	s := NewSession(100, 7, q)

	if s.Answers["paris"] != 40 {
		t.Errorf("stored title was not normalized: %v", s.Answers)
	}
}

func TestSession_RespondentLifecycle(t *testing.T) {
	s := NewSession(100, 7, capitalsQuestion())

	s.SetRespondent(555)
	if s.State != AwaitingAnswer || s.Respondent != 555 {
		t.Errorf("after SetRespondent: state %d respondent %d", s.State, s.Respondent)
	}

	s.ClearRespondent()
	if s.State != AwaitingRespondent || s.Respondent != 0 {
		t.Errorf("after ClearRespondent: state %d respondent %d", s.State, s.Respondent)
	}
}

func TestSession_Reveal(t *testing.T) {
	s := NewSession(100, 7, capitalsQuestion())

	s.Reveal("london", 30)
	s.Reveal("paris", 40)

	if !s.Board[0].Revealed || s.Board[0].Title != "london" || s.Board[0].Score != 30 {
		t.Errorf("slot 0 = %+v, want london/30", s.Board[0])
	}
	if !s.Board[1].Revealed || s.Board[1].Title != "paris" {
		t.Errorf("slot 1 = %+v, want paris", s.Board[1])
	}
	if s.Board[2].Revealed {
		t.Error("slot 2 revealed too early")
	}
	if !s.Guessed["london"] || !s.Guessed["paris"] {
		t.Errorf("guessed set = %v", s.Guessed)
	}
}

func TestSession_RevealTwiceIsNoop(t *testing.T) {
	s := NewSession(100, 7, capitalsQuestion())

	s.Reveal("paris", 40)
	s.Reveal("paris", 40)

	if s.Board[1].Revealed {
		t.Error("double reveal consumed a second slot")
	}
	if len(s.Guessed) != 1 {
		t.Errorf("guessed set has %d entries, want 1", len(s.Guessed))
	}
}

func TestSession_Complete(t *testing.T) {
	s := NewSession(100, 7, capitalsQuestion())

	for title, score := range s.Answers {
		if s.Complete() {
			t.Fatal("session complete before all answers revealed")
		}
		s.Reveal(title, score)
	}
	if !s.Complete() {
		t.Error("session not complete after all six reveals")
	}
}

func TestSession_FillMissed(t *testing.T) {
	s := NewSession(100, 7, capitalsQuestion())
	s.Reveal("paris", 40)

	s.FillMissed()

	if s.Board[0].Missed {
		t.Error("guessed answer marked missed")
	}
	missed := 0
	for _, slot := range s.Board {
		if !slot.Revealed {
			t.Errorf("slot still hidden after FillMissed: %+v", slot)
		}
		if slot.Missed {
			missed++
			if s.Answers[slot.Title] != slot.Score {
				t.Errorf("missed slot %q carries score %d, want %d",
					slot.Title, slot.Score, s.Answers[slot.Title])
			}
		}
	}
	if missed != 5 {
		t.Errorf("%d missed slots, want 5", missed)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	q := capitalsQuestion()

	if r.Get(100) != nil {
		t.Error("empty registry returned a session")
	}

	r.Put(NewSession(100, 1, q))
	r.Put(NewSession(200, 2, q))

	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
	if s := r.Get(100); s == nil || s.GameID != 1 {
		t.Errorf("Get(100) = %+v", s)
	}

	r.Delete(100)
	if r.Get(100) != nil {
		t.Error("session survived Delete")
	}
	if r.Len() != 1 {
		t.Errorf("Len() after delete = %d, want 1", r.Len())
	}

	chats := r.Chats()
	if len(chats) != 1 || chats[0] != 200 {
		t.Errorf("Chats() = %v, want [200]", chats)
	}
}
