package filmmodule

import (
	"context"

	"gorm.io/gorm"

	"github.com/mantonx/cinevault/internal/database"
)

// FilmRepository is the film storage the service depends on
type FilmRepository interface {
	List(ctx context.Context) ([]database.FilmSummary, error)
	GetDetail(ctx context.Context, id string) (*database.Film, error)
	Create(ctx context.Context, film *database.Film) error
	Update(ctx context.Context, id string, updates map[string]interface{}) (*database.Film, error)
	Delete(ctx context.Context, id string) error
	ReplaceGenres(ctx context.Context, filmID string, genreIDs []string) (int, error)
	ReplaceCredits(ctx context.Context, filmID string, credits []database.FilmCredit) (int, error)
}

// Repository is the gorm-backed FilmRepository
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new film repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns the listing projection of every film
func (r *Repository) List(ctx context.Context) ([]database.FilmSummary, error) {
	var films []database.FilmSummary
	err := r.db.WithContext(ctx).
		Model(&database.Film{}).
		Select("id", "title", "poster_url", "release_year").
		Order("created_at ASC").
		Find(&films).Error
	if err != nil {
		return nil, database.TranslateError(err, "Film", "")
	}
	return films, nil
}

// GetDetail loads a film with its genres, credits, reviews and comments in
// one composed read. Comments come newest first.
func (r *Repository) GetDetail(ctx context.Context, id string) (*database.Film, error) {
	var film database.Film
	err := r.db.WithContext(ctx).
		Preload("FilmGenres.Genre").
		Preload("FilmCredits", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Preload("FilmCredits.Person").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Reviews.Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Comments.Author").
		Where("id = ?", id).
		First(&film).Error
	if err != nil {
		return nil, database.TranslateError(err, "Film", id)
	}
	return &film, nil
}

func (r *Repository) Create(ctx context.Context, film *database.Film) error {
	return database.TranslateError(r.db.WithContext(ctx).Create(film).Error, "Film", film.ID)
}

// Update applies a partial set of column updates and returns the stored film
func (r *Repository) Update(ctx context.Context, id string, updates map[string]interface{}) (*database.Film, error) {
	var film database.Film
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&film).Error; err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&film).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&film).Error
	})
	if err != nil {
		return nil, database.TranslateError(err, "Film", id)
	}
	return &film, nil
}

// Delete removes the film; links, reviews and comments go with it
func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&database.Film{})
	if result.Error != nil {
		return database.TranslateError(result.Error, "Film", id)
	}
	if result.RowsAffected == 0 {
		return database.TranslateError(gorm.ErrRecordNotFound, "Film", id)
	}
	return nil
}

// ReplaceGenres swaps the film's genre set for genreIDs. Ids with no matching
// genre are skipped. The whole swap is one transaction.
func (r *Repository) ReplaceGenres(ctx context.Context, filmID string, genreIDs []string) (int, error) {
	count := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureFilm(tx, filmID); err != nil {
			return err
		}
		if err := tx.Where("film_id = ?", filmID).Delete(&database.FilmGenre{}).Error; err != nil {
			return err
		}

		known, err := existingIDs(tx, &database.Genre{}, genreIDs)
		if err != nil {
			return err
		}

		links := make([]database.FilmGenre, 0, len(genreIDs))
		for _, id := range genreIDs {
			if known[id] {
				links = append(links, database.FilmGenre{FilmID: filmID, GenreID: id})
			}
		}
		if len(links) == 0 {
			return nil
		}
		if err := tx.Create(&links).Error; err != nil {
			return err
		}
		count = len(links)
		return nil
	})
	if err != nil {
		return 0, database.TranslateError(err, "Film", filmID)
	}
	return count, nil
}

// ReplaceCredits swaps the film's credit set. Credits naming an unknown
// person are skipped. The whole swap is one transaction.
func (r *Repository) ReplaceCredits(ctx context.Context, filmID string, credits []database.FilmCredit) (int, error) {
	count := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureFilm(tx, filmID); err != nil {
			return err
		}
		if err := tx.Where("film_id = ?", filmID).Delete(&database.FilmCredit{}).Error; err != nil {
			return err
		}

		personIDs := make([]string, 0, len(credits))
		for _, c := range credits {
			personIDs = append(personIDs, c.PersonID)
		}
		known, err := existingIDs(tx, &database.Person{}, personIDs)
		if err != nil {
			return err
		}

		rows := make([]database.FilmCredit, 0, len(credits))
		for _, c := range credits {
			if !known[c.PersonID] {
				continue
			}
			c.ID = ""
			c.FilmID = filmID
			rows = append(rows, c)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		count = len(rows)
		return nil
	})
	if err != nil {
		return 0, database.TranslateError(err, "Film", filmID)
	}
	return count, nil
}

func ensureFilm(tx *gorm.DB, id string) error {
	var n int64
	if err := tx.Model(&database.Film{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// existingIDs returns the subset of ids that exist in model's table
func existingIDs(tx *gorm.DB, model interface{}, ids []string) (map[string]bool, error) {
	found := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	var rows []string
	if err := tx.Model(model).Where("id IN ?", ids).Pluck("id", &rows).Error; err != nil {
		return nil, err
	}
	for _, id := range rows {
		found[id] = true
	}
	return found, nil
}
