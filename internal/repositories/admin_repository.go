package repositories

import (
	"github.com/karlos-perez/hundred-to-one/internal/models"
	"github.com/karlos-perez/hundred-to-one/pkg/errors"
	"gorm.io/gorm"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// GetByEmail retrieves an admin account, nil if absent
func (r *AdminRepository) GetByEmail(email string) (*models.Admin, error) {
	var admin models.Admin
	result := r.db.Where("email = ?", email).First(&admin)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get admin")
	}

	return &admin, nil
}
