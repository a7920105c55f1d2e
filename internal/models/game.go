package models

import (
	"time"

	"gorm.io/gorm"
)

// Maximum number of incorrect answers per participant
const DefaultAttempts = 3

// Game status constants
const (
	GameStatusActive   = "active"
	GameStatusStopped  = "stopped"
	GameStatusFinished = "finished"
	GameStatusError    = "error"
)

// Game is one round of the contest in one chat. At most one game per
// chat may be active at a time; the session registry enforces that, the
// table does not.
type Game struct {
	ID         uint      `gorm:"primaryKey"`
	ChatID     int64     `gorm:"not null;index"`
	QuestionID uint      `gorm:"not null;index"`
	Question   Question  `gorm:"foreignKey:QuestionID"`
	Status     string    `gorm:"type:varchar(20);default:'active';index"`
	DateBegin  time.Time `gorm:"not null"`
	DateEnd    *time.Time
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (Game) TableName() string {
	return "games"
}

// BeforeSave hook validates the status value
func (g *Game) BeforeSave(tx *gorm.DB) error {
	validStatuses := map[string]bool{
		GameStatusActive:   true,
		GameStatusStopped:  true,
		GameStatusFinished: true,
		GameStatusError:    true,
	}
	if !validStatuses[g.Status] {
		return gorm.ErrInvalidData
	}
	return nil
}

// Participant is a (user, game) pair created when the user first takes
// the respondent slot. Attempts only ever go down; a participant at 0
// attempts is out of the game for good.
type Participant struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_participant_user_game"`
	User      User      `gorm:"foreignKey:UserID"`
	GameID    uint      `gorm:"not null;uniqueIndex:idx_participant_user_game;index"`
	Game      Game      `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
	Score     int       `gorm:"default:0"`
	Attempts  int       `gorm:"default:3"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Participant) TableName() string {
	return "participants"
}

// GameAnswer is the append-only audit record of every submitted guess.
// Rows are never updated or deleted while a game exists; recovery reads
// the correct ones back to rebuild the guessed set.
type GameAnswer struct {
	ID            uint        `gorm:"primaryKey"`
	ParticipantID uint        `gorm:"not null;index"`
	Participant   Participant `gorm:"foreignKey:ParticipantID"`
	GameID        uint        `gorm:"not null;index"`
	Game          Game        `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
	Answer        string      `gorm:"type:text;not null"`
	IsCorrect     bool        `gorm:"default:false"`
	CreatedAt     time.Time   `gorm:"autoCreateTime"`
}

func (GameAnswer) TableName() string {
	return "game_answers"
}
