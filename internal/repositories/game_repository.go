package repositories

import (
	"time"

	"github.com/karlos-perez/hundred-to-one/internal/models"
	"github.com/karlos-perez/hundred-to-one/pkg/errors"
	"gorm.io/gorm"
)

type GameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) *GameRepository {
	return &GameRepository{db: db}
}

// CreateGame inserts a new active game for a chat
func (r *GameRepository) CreateGame(chatID int64, questionID uint, start time.Time) (*models.Game, error) {
	game := &models.Game{
		ChatID:     chatID,
		QuestionID: questionID,
		Status:     models.GameStatusActive,
		DateBegin:  start,
	}

	if err := r.db.Create(game).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to create game")
	}

	return game, nil
}

// UpdateGameStatus moves a game to a terminal status and stamps its end time
func (r *GameRepository) UpdateGameStatus(gameID uint, status string, end time.Time) error {
	result := r.db.Model(&models.Game{}).
		Where("id = ?", gameID).
		Updates(map[string]interface{}{
			"status":   status,
			"date_end": end,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update game status")
	}

	return nil
}

// GetActiveGames returns all games still marked active, oldest first,
// with their question and answers loaded. Recovery relies on the
// ordering: the first active row per chat wins, later duplicates are
// closed.
func (r *GameRepository) GetActiveGames() ([]models.Game, error) {
	var games []models.Game
	result := r.db.Where("status = ?", models.GameStatusActive).
		Preload("Question.Answers").
		Order("date_begin ASC").
		Find(&games)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get active games")
	}

	return games, nil
}

// CountActiveGamesForQuestion returns how many active games reference a question
func (r *GameRepository) CountActiveGamesForQuestion(questionID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Game{}).
		Where("question_id = ? AND status = ?", questionID, models.GameStatusActive).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to count games for question")
	}
	return count, nil
}

// CountGames returns the total number of games
func (r *GameRepository) CountGames() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Game{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to count games")
	}
	return count, nil
}

// CountGamesByStatus returns game counts grouped by status
func (r *GameRepository) CountGamesByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.Model(&models.Game{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to count games by status")
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// GetParticipant retrieves the participant row for (user, game), nil if absent
func (r *GameRepository) GetParticipant(userID, gameID uint) (*models.Participant, error) {
	var participant models.Participant
	result := r.db.Where("user_id = ? AND game_id = ?", userID, gameID).
		Preload("User").
		First(&participant)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get participant")
	}

	return &participant, nil
}

// CreateParticipant adds a participant to a game with a full attempt budget
func (r *GameRepository) CreateParticipant(userID, gameID uint, attempts int) (*models.Participant, error) {
	participant := &models.Participant{
		UserID:   userID,
		GameID:   gameID,
		Score:    0,
		Attempts: attempts,
	}

	if err := r.db.Create(participant).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to create participant")
	}

	if err := r.db.Preload("User").First(participant, participant.ID).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to load participant")
	}

	return participant, nil
}

// UpdateParticipantScore sets a participant's cumulative score
func (r *GameRepository) UpdateParticipantScore(participantID uint, score int) error {
	result := r.db.Model(&models.Participant{}).
		Where("id = ?", participantID).
		Update("score", score)

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update participant score")
	}

	return nil
}

// UpdateParticipantAttempts sets a participant's remaining attempts
func (r *GameRepository) UpdateParticipantAttempts(participantID uint, attempts int) error {
	result := r.db.Model(&models.Participant{}).
		Where("id = ?", participantID).
		Update("attempts", attempts)

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update participant attempts")
	}

	return nil
}

// AppendAnswer records a submitted guess; rows are never updated afterwards
func (r *GameRepository) AppendAnswer(participantID, gameID uint, answer string, correct bool) error {
	row := &models.GameAnswer{
		ParticipantID: participantID,
		GameID:        gameID,
		Answer:        answer,
		IsCorrect:     correct,
	}

	if err := r.db.Create(row).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to append game answer")
	}

	return nil
}

// GetCorrectAnswers returns the correct guesses recorded for a game
func (r *GameRepository) GetCorrectAnswers(gameID uint) ([]models.GameAnswer, error) {
	var answers []models.GameAnswer
	result := r.db.Where("game_id = ? AND is_correct = ?", gameID, true).
		Order("created_at ASC").
		Find(&answers)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get correct answers")
	}

	return answers, nil
}

// GetRespondentCandidate returns the participant who still holds the
// respondent slot: attempts remaining, most recently active first. By
// invariant at most one such participant should exist per game.
func (r *GameRepository) GetRespondentCandidate(gameID uint) (*models.Participant, error) {
	var participant models.Participant
	result := r.db.Where("game_id = ? AND attempts > 0", gameID).
		Preload("User").
		Order("updated_at DESC").
		First(&participant)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get respondent candidate")
	}

	return &participant, nil
}

// GetScoreboard returns a game's participants ordered by score
func (r *GameRepository) GetScoreboard(gameID uint) ([]models.Participant, error) {
	var participants []models.Participant
	result := r.db.Where("game_id = ?", gameID).
		Preload("User").
		Order("score DESC").
		Find(&participants)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get scoreboard")
	}

	return participants, nil
}
