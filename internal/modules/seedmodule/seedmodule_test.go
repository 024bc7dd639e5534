package seedmodule

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mantonx/cinevault/internal/config"
	"github.com/mantonx/cinevault/internal/database"
	"github.com/mantonx/cinevault/internal/database/dbtest"
	"github.com/mantonx/cinevault/internal/modules/authmodule"
)

var adminCfg = config.AdminConfig{Email: "Admin@Example.com", Password: "supersecret", Name: "Admin"}

func TestDefaultCatalog(t *testing.T) {
	catalog, err := LoadCatalog("")
	require.NoError(t, err)
	assert.Len(t, catalog.Genres, 18)
	require.Len(t, catalog.Films, 14)
	for _, f := range catalog.Films {
		assert.NotEmpty(t, f.Director, f.Title)
		assert.Len(t, f.Actors, 2, f.Title)
	}
}

func TestParseCatalogRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown genre", `
genres: ["Drama"]
films:
  - title: "A"
    release_year: 2000
    poster_url: "https://example.com/a.jpg"
    director: "D"
    actors: ["X"]
    genres: ["Western"]
`},
		{"bad year", `
genres: ["Drama"]
films:
  - title: "A"
    release_year: 1200
    poster_url: "https://example.com/a.jpg"
    director: "D"
    actors: ["X"]
    genres: ["Drama"]
`},
		{"bad poster url", `
genres: ["Drama"]
films:
  - title: "A"
    release_year: 2000
    poster_url: "a.jpg"
    director: "D"
    actors: ["X"]
    genres: ["Drama"]
`},
		{"blank title", `
genres: ["Drama"]
films:
  - title: " "
    release_year: 2000
    poster_url: "https://example.com/a.jpg"
    director: "D"
    actors: ["X"]
    genres: ["Drama"]
`},
		{"unknown key", `
genres: ["Drama"]
films:
  - title: "A"
    year: 2000
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
genres: ["Drama", "Crime"]
films:
  - title: "Heat"
    release_year: 1995
    poster_url: "https://example.com/heat.jpg"
    director: "Michael Mann"
    actors: ["Al Pacino", "Robert De Niro"]
    genres: ["Crime", "Drama"]
`), 0644))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, catalog.Films, 1)
	assert.Equal(t, 1995, catalog.Films[0].ReleaseYear)

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSeedIsIdempotent(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	catalog, err := LoadCatalog("")
	require.NoError(t, err)

	seeder := NewSeeder(db, adminCfg, bcrypt.MinCost, hclog.NewNullLogger())
	report, err := seeder.Run(ctx, catalog)
	require.NoError(t, err)
	assert.True(t, report.AdminCreated)
	assert.Equal(t, 14, report.Films)
	assert.Equal(t, 18, report.Genres)

	counts := func() map[string]int64 {
		return map[string]int64{
			"users":   dbtest.Count(t, db, &database.User{}),
			"films":   dbtest.Count(t, db, &database.Film{}),
			"genres":  dbtest.Count(t, db, &database.Genre{}),
			"people":  dbtest.Count(t, db, &database.Person{}),
			"links":   dbtest.Count(t, db, &database.FilmGenre{}),
			"credits": dbtest.Count(t, db, &database.FilmCredit{}),
		}
	}
	first := counts()
	assert.EqualValues(t, 1, first["users"])
	assert.EqualValues(t, 14*3, first["credits"])
	assert.EqualValues(t, report.People, first["people"])

	report, err = seeder.Run(ctx, catalog)
	require.NoError(t, err)
	assert.False(t, report.AdminCreated)
	assert.Zero(t, report.Films)
	assert.Equal(t, first, counts())

	var admin database.User
	require.NoError(t, db.Where("role = ?", database.RoleAdmin).First(&admin).Error)
	assert.Equal(t, "admin@example.com", admin.Email)
	assert.True(t, authmodule.CheckPassword(admin.PasswordHash, "supersecret"))

	var person database.Person
	require.NoError(t, db.Where("full_name = ?", "Christopher Nolan").First(&person).Error)
	assert.Equal(t, database.PersonRoleDirector, person.PrimaryRole)
	require.NotNil(t, person.Bio)
	assert.Equal(t, "This is a bio for Christopher Nolan.", *person.Bio)
}

func TestSeedSkipsAdminWithoutCredentials(t *testing.T) {
	db := dbtest.New(t)
	seeder := NewSeeder(db, config.AdminConfig{Email: "a@example.com", Name: "A"}, bcrypt.MinCost, hclog.NewNullLogger())

	created, err := seeder.SeedAdmin(context.Background())
	require.NoError(t, err)
	assert.False(t, created)
	assert.EqualValues(t, 0, dbtest.Count(t, db, &database.User{}))
}

func TestSeedSkipsCatalogWhenFilmsExist(t *testing.T) {
	db := dbtest.New(t)
	dbtest.CreateFilm(t, db, "Existing")
	dbtest.CreateGenre(t, db, "Drama")

	catalog, err := LoadCatalog("")
	require.NoError(t, err)

	report := &Report{}
	require.NoError(t, NewSeeder(db, config.AdminConfig{}, bcrypt.MinCost, hclog.NewNullLogger()).SeedCatalog(context.Background(), catalog, report))
	assert.Zero(t, report.Films)
	assert.EqualValues(t, 1, dbtest.Count(t, db, &database.Film{}))
	assert.EqualValues(t, 1, dbtest.Count(t, db, &database.Genre{}))
}

func TestCatalogPeopleOrder(t *testing.T) {
	people := catalogPeople(&Catalog{Films: []CatalogFilm{
		{Director: "Clint Eastwood", Actors: []string{"Gene Hackman"}},
		{Director: "Sergio Leone", Actors: []string{"Clint Eastwood", "Eli Wallach"}},
	}})
	require.Len(t, people, 4)
	assert.Equal(t, catalogPerson{"Clint Eastwood", database.PersonRoleDirector}, people[0])
	assert.Equal(t, catalogPerson{"Eli Wallach", database.PersonRoleActor}, people[3])
}
