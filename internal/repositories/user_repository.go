package repositories

import (
	"github.com/karlos-perez/hundred-to-one/internal/models"
	"github.com/karlos-perez/hundred-to-one/pkg/errors"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByTelegramID retrieves a user by telegram ID
func (r *UserRepository) GetByTelegramID(telegramID int64) (*models.User, error) {
	var user models.User
	result := r.db.Where("telegram_id = ?", telegramID).First(&user)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get user")
	}

	return &user, nil
}

// GetOrCreate returns the user row for a telegram ID, creating it on
// first contact. The stored name is refreshed when it changed.
func (r *UserRepository) GetOrCreate(telegramID int64, fullName string) (*models.User, error) {
	user, err := r.GetByTelegramID(telegramID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		if fullName != "" && user.FullName != fullName {
			user.FullName = fullName
			if err := r.db.Model(user).Update("full_name", fullName).Error; err != nil {
				return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to update user name")
			}
		}
		return user, nil
	}

	user = &models.User{TelegramID: telegramID, FullName: fullName}
	if err := r.db.Create(user).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to create user")
	}
	return user, nil
}

// CountUsers returns the number of known users
func (r *UserRepository) CountUsers() (int64, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to count users")
	}
	return count, nil
}

// UserTotals returns per-user game counts and score sums across all games
func (r *UserRepository) UserTotals() ([]UserTotal, error) {
	var totals []UserTotal
	err := r.db.Model(&models.Participant{}).
		Select("users.full_name AS full_name, COUNT(participants.id) AS games, COALESCE(SUM(participants.score), 0) AS scores").
		Joins("JOIN users ON users.id = participants.user_id").
		Group("users.full_name").
		Order("scores DESC").
		Scan(&totals).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get user totals")
	}
	return totals, nil
}

type UserTotal struct {
	FullName string `json:"fullname"`
	Games    int64  `json:"games"`
	Scores   int64  `json:"scores"`
}
