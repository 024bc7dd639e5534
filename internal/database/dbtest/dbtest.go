// Package dbtest opens migrated in-memory databases for tests.
package dbtest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mantonx/cinevault/internal/database"
)

// New returns a fresh, fully migrated in-memory SQLite database.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a user with the given role.
func CreateUser(t testing.TB, db *gorm.DB, name string, role database.UserRole) *database.User {
	t.Helper()
	u := &database.User{Name: name, Email: name + "@example.com", PasswordHash: "x", Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreateFilm inserts a minimal film.
func CreateFilm(t testing.TB, db *gorm.DB, title string) *database.Film {
	t.Helper()
	f := &database.Film{Title: title, ReleaseYear: 2000, PosterURL: "https://example.com/" + title + ".jpg"}
	require.NoError(t, db.Create(f).Error)
	return f
}

// CreateGenre inserts a genre.
func CreateGenre(t testing.TB, db *gorm.DB, name string) *database.Genre {
	t.Helper()
	g := &database.Genre{Name: name}
	require.NoError(t, db.Create(g).Error)
	return g
}

// CreatePerson inserts a person with the given primary role.
func CreatePerson(t testing.TB, db *gorm.DB, name string, role database.PersonRole) *database.Person {
	t.Helper()
	p := &database.Person{FullName: name, PrimaryRole: role}
	require.NoError(t, db.Create(p).Error)
	return p
}

// Count returns the row count for model.
func Count(t testing.TB, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
