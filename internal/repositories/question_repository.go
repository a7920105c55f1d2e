package repositories

import (
	"github.com/karlos-perez/hundred-to-one/internal/models"
	"github.com/karlos-perez/hundred-to-one/pkg/errors"
	"gorm.io/gorm"
)

type QuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Create inserts a question together with its answers
func (r *QuestionRepository) Create(question *models.Question) error {
	if err := r.db.Create(question).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create question")
	}
	return nil
}

// GetByID retrieves a question with its answers
func (r *QuestionRepository) GetByID(id uint) (*models.Question, error) {
	var question models.Question
	result := r.db.Preload("Answers").First(&question, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "question not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get question")
	}

	return &question, nil
}

// GetByTitle retrieves a question by its unique title, nil if absent
func (r *QuestionRepository) GetByTitle(title string) (*models.Question, error) {
	var question models.Question
	result := r.db.Where("title = ?", title).Preload("Answers").First(&question)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get question")
	}

	return &question, nil
}

// List returns all questions with their answers
func (r *QuestionRepository) List() ([]models.Question, error) {
	var questions []models.Question
	result := r.db.Preload("Answers").Order("id ASC").Find(&questions)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list questions")
	}

	return questions, nil
}

// GetRandom draws a random question with its answers
func (r *QuestionRepository) GetRandom() (*models.Question, error) {
	var question models.Question
	result := r.db.Preload("Answers").Order("RANDOM()").First(&question)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "no questions found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to draw question")
	}

	return &question, nil
}

// Delete removes a question and its answers
func (r *QuestionRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Question{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete question")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "question not found")
	}
	return nil
}

// CountQuestions returns the total number of questions
func (r *QuestionRepository) CountQuestions() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Question{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to count questions")
	}
	return count, nil
}
