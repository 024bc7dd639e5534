package personmodule

import (
	"context"

	"gorm.io/gorm"

	"github.com/mantonx/cinevault/internal/database"
)

// PersonRepository is the person storage the service depends on
type PersonRepository interface {
	List(ctx context.Context, role database.PersonRole) ([]database.Person, error)
	Get(ctx context.Context, id string) (*database.Person, error)
	Create(ctx context.Context, person *database.Person) error
	Update(ctx context.Context, id string, updates map[string]interface{}) (*database.Person, error)
	Delete(ctx context.Context, id string) error
	Films(ctx context.Context, id string) ([]database.Film, error)
}

// Repository is the gorm-backed PersonRepository
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new person repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every person, or only those with primary role when it is set
func (r *Repository) List(ctx context.Context, role database.PersonRole) ([]database.Person, error) {
	query := r.db.WithContext(ctx).Order("full_name ASC")
	if role != "" {
		query = query.Where("primary_role = ?", role)
	}

	var people []database.Person
	if err := query.Find(&people).Error; err != nil {
		return nil, database.TranslateError(err, "Person", "")
	}
	return people, nil
}

func (r *Repository) Get(ctx context.Context, id string) (*database.Person, error) {
	var person database.Person
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&person).Error; err != nil {
		return nil, database.TranslateError(err, "Person", id)
	}
	return &person, nil
}

func (r *Repository) Create(ctx context.Context, person *database.Person) error {
	return database.TranslateError(r.db.WithContext(ctx).Create(person).Error, "Person", person.ID)
}

func (r *Repository) Update(ctx context.Context, id string, updates map[string]interface{}) (*database.Person, error) {
	var person database.Person
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&person).Error; err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&person).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&person).Error
	})
	if err != nil {
		return nil, database.TranslateError(err, "Person", id)
	}
	return &person, nil
}

// Delete removes the person and every credit naming them
func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&database.Person{})
	if result.Error != nil {
		return database.TranslateError(result.Error, "Person", id)
	}
	if result.RowsAffected == 0 {
		return database.TranslateError(gorm.ErrRecordNotFound, "Person", id)
	}
	return nil
}

// Films returns each film the person is credited on once, whatever the
// number of credits they hold on it.
func (r *Repository) Films(ctx context.Context, id string) ([]database.Film, error) {
	if _, err := r.Get(ctx, id); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	credited := db.Model(&database.FilmCredit{}).Select("film_id").Where("person_id = ?", id)

	var films []database.Film
	if err := db.Where("id IN (?)", credited).Order("release_year ASC").Find(&films).Error; err != nil {
		return nil, database.TranslateError(err, "Film", "")
	}
	return films, nil
}
