package commentmodule

import (
	"context"

	"gorm.io/gorm"

	"github.com/mantonx/cinevault/internal/database"
)

// CommentRepository is the comment storage the service depends on
type CommentRepository interface {
	ListByFilm(ctx context.Context, filmID string) ([]database.Comment, error)
	Get(ctx context.Context, id string) (*database.Comment, error)
	Create(ctx context.Context, comment *database.Comment) (*database.Comment, error)
	Delete(ctx context.Context, id string) error
}

// Repository is the gorm-backed CommentRepository
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByFilm returns the film's comments newest first
func (r *Repository) ListByFilm(ctx context.Context, filmID string) ([]database.Comment, error) {
	var comments []database.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("film_id = ?", filmID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, database.TranslateError(err, "Comment", "")
	}
	return comments, nil
}

func (r *Repository) Get(ctx context.Context, id string) (*database.Comment, error) {
	var comment database.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, database.TranslateError(err, "Comment", id)
	}
	return &comment, nil
}

// Create inserts comment on an existing film and returns it with its author
func (r *Repository) Create(ctx context.Context, comment *database.Comment) (*database.Comment, error) {
	var stored database.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&database.Film{}).Where("id = ?", comment.FilmID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Preload("Author").Where("id = ?", comment.ID).First(&stored).Error
	})
	if err != nil {
		return nil, database.TranslateError(err, "Film", comment.FilmID)
	}
	return &stored, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&database.Comment{})
	if result.Error != nil {
		return database.TranslateError(result.Error, "Comment", id)
	}
	if result.RowsAffected == 0 {
		return database.TranslateError(gorm.ErrRecordNotFound, "Comment", id)
	}
	return nil
}
