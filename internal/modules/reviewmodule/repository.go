package reviewmodule

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mantonx/cinevault/internal/database"
)

// ReviewRepository is the review storage the service depends on
type ReviewRepository interface {
	ListByFilm(ctx context.Context, filmID string) ([]database.Review, error)
	Upsert(ctx context.Context, review *database.Review) (*database.Review, error)
	Delete(ctx context.Context, id string) error
}

// Repository is the gorm-backed ReviewRepository
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new review repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByFilm returns the film's reviews with their authors, newest first
func (r *Repository) ListByFilm(ctx context.Context, filmID string) ([]database.Review, error) {
	var reviews []database.Review
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("film_id = ?", filmID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, database.TranslateError(err, "Review", "")
	}
	return reviews, nil
}

// Upsert stores review as the single review of its (film, author) pair.
// An existing review keeps its id and creation time; rating and text are
// replaced. The stored row is returned with its author.
func (r *Repository) Upsert(ctx context.Context, review *database.Review) (*database.Review, error) {
	var stored database.Review
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&database.Film{}).Where("id = ?", review.FilmID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}

		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "film_id"}, {Name: "author_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "review_text", "updated_at"}),
		}).Create(review).Error
		if err != nil {
			return err
		}

		return tx.Preload("Author").
			Where("film_id = ? AND author_id = ?", review.FilmID, review.AuthorID).
			First(&stored).Error
	})
	if err != nil {
		return nil, database.TranslateError(err, "Film", review.FilmID)
	}
	return &stored, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&database.Review{})
	if result.Error != nil {
		return database.TranslateError(result.Error, "Review", id)
	}
	if result.RowsAffected == 0 {
		return database.TranslateError(gorm.ErrRecordNotFound, "Review", id)
	}
	return nil
}
