package users

import (
	"context"

	"github.com/Arthur-020/labstock-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository handles user account persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to user operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all accounts ordered by ID.
func (r *Repository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("id").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// FindByLogin loads an account by its unique login.
func (r *Repository) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "login = ?", login).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new account. A duplicate login surfaces as the
// database's unique violation error.
func (r *Repository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account by ID.
func (r *Repository) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{}).Error
}
