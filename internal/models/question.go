package models

import (
	"fmt"
	"time"
)

// Every question carries exactly this many hidden answers.
const AnswersPerQuestion = 6

type Question struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"type:text;not null;uniqueIndex"`
	Answers   []Answer  `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Question) TableName() string {
	return "questions"
}

type Answer struct {
	ID         uint   `gorm:"primaryKey"`
	QuestionID uint   `gorm:"not null;index"`
	Title      string `gorm:"type:text;not null"`
	Score      int    `gorm:"not null"`
}

func (Answer) TableName() string {
	return "answers"
}

// AnswerMap returns the answer titles mapped to their scores.
func (q *Question) AnswerMap() map[string]int {
	m := make(map[string]int, len(q.Answers))
	for _, a := range q.Answers {
		m[a.Title] = a.Score
	}
	return m
}

// Validate checks the invariants every playable question must hold:
// exactly six answers, no duplicate titles, positive scores that sum to
// sumScore. Questions failing this must never reach a session.
func (q *Question) Validate(sumScore int) error {
	if q.Title == "" {
		return fmt.Errorf("question title is required")
	}
	if len(q.Answers) != AnswersPerQuestion {
		return fmt.Errorf("there must be %d answers to the question, got %d",
			AnswersPerQuestion, len(q.Answers))
	}

	seen := make(map[string]bool, len(q.Answers))
	sum := 0
	for _, a := range q.Answers {
		if a.Title == "" {
			return fmt.Errorf("answer title is required")
		}
		if seen[a.Title] {
			return fmt.Errorf("answers to the question should not be repeated: %q", a.Title)
		}
		seen[a.Title] = true
		if a.Score <= 0 {
			return fmt.Errorf("answer score must be positive: %q", a.Title)
		}
		sum += a.Score
	}

	if sum != sumScore {
		return fmt.Errorf("answer scores must sum to %d, got %d", sumScore, sum)
	}
	return nil
}
