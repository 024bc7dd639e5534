// Package seedmodule bootstraps the admin account and the reference catalog.
// Every step is gated on existing data, so it runs safely on each startup.
package seedmodule

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/mantonx/cinevault/internal/config"
	"github.com/mantonx/cinevault/internal/database"
	"github.com/mantonx/cinevault/internal/modules/authmodule"
)

// Report summarises what a seed run inserted
type Report struct {
	AdminCreated bool
	Genres       int
	People       int
	Films        int
}

// Seeder inserts bootstrap data
type Seeder struct {
	db         *gorm.DB
	admin      config.AdminConfig
	bcryptCost int
	logger     hclog.Logger
}

// NewSeeder creates a seeder. Admin credentials are optional.
func NewSeeder(db *gorm.DB, admin config.AdminConfig, bcryptCost int, logger hclog.Logger) *Seeder {
	return &Seeder{db: db, admin: admin, bcryptCost: bcryptCost, logger: logger}
}

// Run seeds the admin and then the catalog
func (s *Seeder) Run(ctx context.Context, catalog *Catalog) (*Report, error) {
	report := &Report{}

	created, err := s.SeedAdmin(ctx)
	if err != nil {
		return nil, err
	}
	report.AdminCreated = created

	if err := s.SeedCatalog(ctx, catalog, report); err != nil {
		return nil, err
	}
	return report, nil
}

// SeedAdmin creates the configured admin when no ADMIN exists yet
func (s *Seeder) SeedAdmin(ctx context.Context) (bool, error) {
	if !s.admin.Complete() {
		s.logger.Warn("admin credentials (ADMIN_EMAIL, ADMIN_PASSWORD, ADMIN_NAME) not set, skipping admin seeding")
		return false, nil
	}

	db := s.db.WithContext(ctx)
	var admins int64
	if err := db.Model(&database.User{}).Where("role = ?", database.RoleAdmin).Count(&admins).Error; err != nil {
		return false, fmt.Errorf("failed to count admins: %w", err)
	}
	if admins > 0 {
		s.logger.Debug("admin already present", "count", admins)
		return false, nil
	}

	hash, err := authmodule.HashPassword(s.admin.Password, s.bcryptCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}
	admin := &database.User{
		Name:         s.admin.Name,
		Email:        strings.ToLower(strings.TrimSpace(s.admin.Email)),
		PasswordHash: hash,
		Role:         database.RoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		return false, fmt.Errorf("failed to create admin: %w", database.TranslateError(err, "User with this email", admin.Email))
	}

	s.logger.Info("admin user created", "email", admin.Email)
	return true, nil
}

// SeedCatalog loads catalog into an empty film table. Genres and people are
// matched by name, so rows that already exist are reused.
func (s *Seeder) SeedCatalog(ctx context.Context, catalog *Catalog, report *Report) error {
	db := s.db.WithContext(ctx)

	var films int64
	if err := db.Model(&database.Film{}).Count(&films).Error; err != nil {
		return fmt.Errorf("failed to count films: %w", err)
	}
	if films > 0 {
		s.logger.Debug("catalog already present, skipping film seeding", "films", films)
		return nil
	}

	s.logger.Info("seeding films", "films", len(catalog.Films))

	genres := make(map[string]string, len(catalog.Genres))
	for _, name := range catalog.Genres {
		if _, ok := genres[name]; ok {
			continue
		}
		genre := database.Genre{Name: name}
		created, err := findOrCreate(db, &genre, "name = ?", name)
		if err != nil {
			return fmt.Errorf("failed to seed genre %q: %w", name, err)
		}
		if created {
			report.Genres++
		}
		genres[name] = genre.ID
	}

	people := make(map[string]string)
	for _, p := range catalogPeople(catalog) {
		person := database.Person{
			FullName:    p.name,
			PrimaryRole: p.role,
			Bio:         strPtr(fmt.Sprintf("This is a bio for %s.", p.name)),
		}
		created, err := findOrCreate(db, &person, "full_name = ?", p.name)
		if err != nil {
			return fmt.Errorf("failed to seed person %q: %w", p.name, err)
		}
		if created {
			report.People++
		}
		people[p.name] = person.ID
	}

	for _, f := range catalog.Films {
		if err := db.Transaction(func(tx *gorm.DB) error {
			return seedFilm(tx, f, genres, people)
		}); err != nil {
			return fmt.Errorf("failed to seed film %q: %w", f.Title, err)
		}
		report.Films++
	}

	s.logger.Info("films seeded", "films", report.Films, "genres", report.Genres, "people", report.People)
	return nil
}

func seedFilm(tx *gorm.DB, f CatalogFilm, genres, people map[string]string) error {
	film := &database.Film{
		Title:       f.Title,
		ReleaseYear: f.ReleaseYear,
		PosterURL:   f.PosterURL,
	}
	if f.Synopsis != "" {
		film.Synopsis = strPtr(f.Synopsis)
	}
	if err := tx.Create(film).Error; err != nil {
		return err
	}

	var links []database.FilmGenre
	seen := make(map[string]bool)
	for _, name := range f.Genres {
		if id, ok := genres[name]; ok && !seen[id] {
			seen[id] = true
			links = append(links, database.FilmGenre{FilmID: film.ID, GenreID: id})
		}
	}
	if len(links) > 0 {
		if err := tx.Create(&links).Error; err != nil {
			return err
		}
	}

	var credits []database.FilmCredit
	if id, ok := people[f.Director]; ok {
		credits = append(credits, database.FilmCredit{FilmID: film.ID, PersonID: id, CreditType: database.CreditDirector})
	}
	for i, name := range f.Actors {
		if id, ok := people[name]; ok {
			order := i
			credits = append(credits, database.FilmCredit{FilmID: film.ID, PersonID: id, CreditType: database.CreditActor, OrderIndex: &order})
		}
	}
	if len(credits) > 0 {
		return tx.Create(&credits).Error
	}
	return nil
}

// findOrCreate loads the row matching query into dest, inserting dest when
// there is none. It reports whether a row was inserted.
func findOrCreate(db *gorm.DB, dest interface{}, query string, args ...interface{}) (bool, error) {
	result := db.Where(query, args...).Limit(1).Find(dest)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return false, nil
	}
	if err := db.Create(dest).Error; err != nil {
		return false, err
	}
	return true, nil
}

type catalogPerson struct {
	name string
	role database.PersonRole
}

// catalogPeople lists each person once, in order of first appearance. A
// film's director is seen before its actors.
func catalogPeople(catalog *Catalog) []catalogPerson {
	var people []catalogPerson
	seen := make(map[string]bool)
	add := func(name string, role database.PersonRole) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		people = append(people, catalogPerson{name: name, role: role})
	}
	for _, f := range catalog.Films {
		add(f.Director, database.PersonRoleDirector)
		for _, actor := range f.Actors {
			add(actor, database.PersonRoleActor)
		}
	}
	return people
}

func strPtr(s string) *string { return &s }
