package repositories

import (
	"time"

	"github.com/karlos-perez/hundred-to-one/internal/models"
	"gorm.io/gorm"
)

// Store bundles the repositories behind the operation set the game
// engine requires (game.Store). The engine never sees gorm.
type Store struct {
	Users     *UserRepository
	Games     *GameRepository
	Questions *QuestionRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		Users:     NewUserRepository(db),
		Games:     NewGameRepository(db),
		Questions: NewQuestionRepository(db),
	}
}

func (s *Store) EnsureUser(telegramID int64, fullName string) (*models.User, error) {
	return s.Users.GetOrCreate(telegramID, fullName)
}

func (s *Store) CreateGame(chatID int64, questionID uint, start time.Time) (*models.Game, error) {
	return s.Games.CreateGame(chatID, questionID, start)
}

func (s *Store) UpdateGameStatus(gameID uint, status string, end time.Time) error {
	return s.Games.UpdateGameStatus(gameID, status, end)
}

func (s *Store) ActiveGames() ([]models.Game, error) {
	return s.Games.GetActiveGames()
}

func (s *Store) DrawQuestion() (*models.Question, error) {
	return s.Questions.GetRandom()
}

func (s *Store) Participant(userID, gameID uint) (*models.Participant, error) {
	return s.Games.GetParticipant(userID, gameID)
}

func (s *Store) CreateParticipant(userID, gameID uint, attempts int) (*models.Participant, error) {
	return s.Games.CreateParticipant(userID, gameID, attempts)
}

func (s *Store) UpdateParticipantScore(participantID uint, score int) error {
	return s.Games.UpdateParticipantScore(participantID, score)
}

func (s *Store) UpdateParticipantAttempts(participantID uint, attempts int) error {
	return s.Games.UpdateParticipantAttempts(participantID, attempts)
}

func (s *Store) AppendAnswer(participantID, gameID uint, answer string, correct bool) error {
	return s.Games.AppendAnswer(participantID, gameID, answer, correct)
}

func (s *Store) CorrectAnswers(gameID uint) ([]models.GameAnswer, error) {
	return s.Games.GetCorrectAnswers(gameID)
}

func (s *Store) RespondentCandidate(gameID uint) (*models.Participant, error) {
	return s.Games.GetRespondentCandidate(gameID)
}

func (s *Store) Scoreboard(gameID uint) ([]models.Participant, error) {
	return s.Games.GetScoreboard(gameID)
}
