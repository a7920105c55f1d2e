package models

import (
	"testing"
)

func validQuestion() *Question {
	return &Question{
		Title: "Name a European capital",
		Answers: []Answer{
			{Title: "paris", Score: 40},
			{Title: "london", Score: 30},
			{Title: "berlin", Score: 15},
			{Title: "rome", Score: 10},
			{Title: "madrid", Score: 3},
			{Title: "oslo", Score: 2},
		},
	}
}

func TestQuestion_Validate(t *testing.T) {
	q := validQuestion()
	if err := q.Validate(100); err != nil {
		t.Errorf("Validate() unexpected error = %v", err)
	}
}

func TestQuestion_Validate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(q *Question)
	}{
		{
			name:   "Empty title",
			mutate: func(q *Question) { q.Title = "" },
		},
		{
			name:   "Five answers",
			mutate: func(q *Question) { q.Answers = q.Answers[:5] },
		},
		{
			name: "Seven answers",
			mutate: func(q *Question) {
				q.Answers = append(q.Answers, Answer{Title: "vienna", Score: 1})
			},
		},
		{
			name:   "Duplicate answer titles",
			mutate: func(q *Question) { q.Answers[1].Title = "paris" },
		},
		{
			name:   "Empty answer title",
			mutate: func(q *Question) { q.Answers[3].Title = "" },
		},
		{
			name: "Zero score",
			mutate: func(q *Question) {
				q.Answers[5].Score = 0
				q.Answers[0].Score = 42
			},
		},
		{
			name:   "Scores do not sum to total",
			mutate: func(q *Question) { q.Answers[0].Score = 41 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(q)
			if err := q.Validate(100); err == nil {
				t.Error("Validate() expected error, got nil")
			}
		})
	}
}

func TestQuestion_AnswerMap(t *testing.T) {
	q := validQuestion()
	m := q.AnswerMap()

	if len(m) != AnswersPerQuestion {
		t.Fatalf("AnswerMap() size = %d, want %d", len(m), AnswersPerQuestion)
	}
	if m["paris"] != 40 {
		t.Errorf("AnswerMap()[paris] = %d, want 40", m["paris"])
	}
	if m["oslo"] != 2 {
		t.Errorf("AnswerMap()[oslo] = %d, want 2", m["oslo"])
	}
}

func TestGame_BeforeSave(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		wantErr bool
	}{
		{name: "Active", status: GameStatusActive, wantErr: false},
		{name: "Stopped", status: GameStatusStopped, wantErr: false},
		{name: "Finished", status: GameStatusFinished, wantErr: false},
		{name: "Error", status: GameStatusError, wantErr: false},
		{name: "Invalid", status: "paused", wantErr: true},
		{name: "Empty", status: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Game{ChatID: -100123, QuestionID: 1, Status: tt.status}
			err := g.BeforeSave(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("BeforeSave() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAdmin_CheckPassword(t *testing.T) {
	admin := &Admin{
		Email:    "admin@admin.com",
		Password: HashPassword("secret"),
	}

	if !admin.CheckPassword("secret") {
		t.Error("CheckPassword() = false for correct password")
	}
	if admin.CheckPassword("wrong") {
		t.Error("CheckPassword() = true for wrong password")
	}
}
