package authmodule

import (
	"context"

	"gorm.io/gorm"

	"github.com/mantonx/cinevault/internal/database"
)

// UserRepository is the account storage the auth service depends on
type UserRepository interface {
	Create(ctx context.Context, user *database.User) error
	FindByEmail(ctx context.Context, email string) (*database.User, error)
	FindByID(ctx context.Context, id string) (*database.User, error)
	CountByRole(ctx context.Context, role database.UserRole) (int64, error)
}

// Repository is the gorm-backed UserRepository
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new user repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, user *database.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	return database.TranslateError(err, "User with this email", user.Email)
}

// FindByEmail returns a NOT_FOUND AppError when no user has the email
func (r *Repository) FindByEmail(ctx context.Context, email string) (*database.User, error) {
	var user database.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, database.TranslateError(err, "User", email)
	}
	return &user, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*database.User, error) {
	var user database.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, database.TranslateError(err, "User", id)
	}
	return &user, nil
}

func (r *Repository) CountByRole(ctx context.Context, role database.UserRole) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&database.User{}).Where("role = ?", role).Count(&count).Error
	return count, database.TranslateError(err, "User", "")
}
