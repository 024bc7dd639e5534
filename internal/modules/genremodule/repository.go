package genremodule

import (
	"context"

	"gorm.io/gorm"

	"github.com/mantonx/cinevault/internal/database"
)

// GenreRepository is the genre storage the service depends on
type GenreRepository interface {
	List(ctx context.Context) ([]database.Genre, error)
	Get(ctx context.Context, id string) (*database.Genre, error)
	Create(ctx context.Context, genre *database.Genre) error
	Rename(ctx context.Context, id, name string) (*database.Genre, error)
	Delete(ctx context.Context, id string) error
	Films(ctx context.Context, id string) ([]database.Film, error)
}

// Repository is the gorm-backed GenreRepository
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new genre repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context) ([]database.Genre, error) {
	var genres []database.Genre
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&genres).Error; err != nil {
		return nil, database.TranslateError(err, "Genre", "")
	}
	return genres, nil
}

func (r *Repository) Get(ctx context.Context, id string) (*database.Genre, error) {
	var genre database.Genre
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&genre).Error; err != nil {
		return nil, database.TranslateError(err, "Genre", id)
	}
	return &genre, nil
}

// Create inserts genre; a taken name is a CONFLICT
func (r *Repository) Create(ctx context.Context, genre *database.Genre) error {
	err := r.db.WithContext(ctx).Create(genre).Error
	if database.IsUniqueViolation(err) {
		return database.TranslateError(err, "Genre "+genre.Name, genre.ID)
	}
	return database.TranslateError(err, "Genre", genre.ID)
}

func (r *Repository) Rename(ctx context.Context, id, name string) (*database.Genre, error) {
	var genre database.Genre
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&genre).Error; err != nil {
			return err
		}
		if err := tx.Model(&genre).Update("name", name).Error; err != nil {
			return err
		}
		genre.Name = name
		return nil
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, database.TranslateError(err, "Genre "+name, id)
		}
		return nil, database.TranslateError(err, "Genre", id)
	}
	return &genre, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&database.Genre{})
	if result.Error != nil {
		return database.TranslateError(result.Error, "Genre", id)
	}
	if result.RowsAffected == 0 {
		return database.TranslateError(gorm.ErrRecordNotFound, "Genre", id)
	}
	return nil
}

// Films returns the films linked to the genre
func (r *Repository) Films(ctx context.Context, id string) ([]database.Film, error) {
	if _, err := r.Get(ctx, id); err != nil {
		return nil, err
	}

	var films []database.Film
	err := r.db.WithContext(ctx).
		Joins("JOIN film_genres ON film_genres.film_id = films.id").
		Where("film_genres.genre_id = ?", id).
		Order("films.title ASC").
		Find(&films).Error
	if err != nil {
		return nil, database.TranslateError(err, "Film", "")
	}
	return films, nil
}
