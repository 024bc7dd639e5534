package filmmodule

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mantonx/cinevault/internal/api/apitest"
	"github.com/mantonx/cinevault/internal/database"
	"github.com/mantonx/cinevault/internal/database/dbtest"
	"github.com/mantonx/cinevault/internal/policy"
	"github.com/mantonx/cinevault/internal/types"
	"github.com/mantonx/cinevault/internal/utils"
)

type fixture struct {
	db     *gorm.DB
	module *Module
	admin  *policy.Actor
	user   *policy.Actor
	router *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	admin := dbtest.CreateUser(t, db, "admin", database.RoleAdmin)
	user := dbtest.CreateUser(t, db, "user", database.RoleUser)

	f := &fixture{
		db:     db,
		module: NewModule(db, hclog.NewNullLogger()),
		admin:  &policy.Actor{ID: admin.ID, Name: admin.Name, Role: admin.Role},
		user:   &policy.Actor{ID: user.ID, Name: user.Name, Role: user.Role},
	}
	f.router = apitest.NewRouter(apitest.Tokens{"admin": f.admin, "user": f.user}, f.module.RegisterRoutes)
	return f
}

func TestCreateAndList(t *testing.T) {
	f := newFixture(t)

	w := apitest.Do(f.router, http.MethodPost, "/films",
		`{"title":"Dune","releaseYear":2021,"posterUrl":"https://example.com/dune.jpg"}`, "admin")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created database.Film
	apitest.Decode(t, w, &created)
	assert.True(t, utils.IsValidUUID(created.ID))
	assert.Nil(t, created.Synopsis)

	w = apitest.Do(f.router, http.MethodGet, "/films", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var listed []map[string]interface{}
	apitest.Decode(t, w, &listed)
	require.Len(t, listed, 1)
	assert.Len(t, listed[0], 4)
	assert.Equal(t, "Dune", listed[0]["title"])
	assert.Equal(t, "https://example.com/dune.jpg", listed[0]["posterUrl"])
	assert.EqualValues(t, 2021, listed[0]["releaseYear"])
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name      string
		body      string
		violation string
	}{
		{"missing title", `{"releaseYear":2021,"posterUrl":"https://example.com/a.jpg"}`, "title is required"},
		{"blank title", `{"title":"   ","releaseYear":2021,"posterUrl":"https://example.com/a.jpg"}`, "title should not be empty"},
		{"bad url", `{"title":"A","releaseYear":2021,"posterUrl":"not a url"}`, "posterUrl must be a URL address"},
		{"unknown field", `{"title":"A","releaseYear":2021,"posterUrl":"https://example.com/a.jpg","rating":5}`, "property rating should not exist"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := apitest.Do(f.router, http.MethodPost, "/films", tt.body, "admin")
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, apitest.ErrorOf(t, w).Violations, tt.violation)
		})
	}
}

func TestMutationsRequireAdmin(t *testing.T) {
	f := newFixture(t)
	film := dbtest.CreateFilm(t, f.db, "Heat")
	body := `{"title":"X","releaseYear":2000,"posterUrl":"https://example.com/x.jpg"}`

	w := apitest.Do(f.router, http.MethodPost, "/films", body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = apitest.Do(f.router, http.MethodPost, "/films", body, "user")
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Authorization is decided before the body is validated.
	w = apitest.Do(f.router, http.MethodPost, "/films", `{}`, "user")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = apitest.Do(f.router, http.MethodDelete, "/films/"+film.ID, "", "user")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.EqualValues(t, 1, dbtest.Count(t, f.db, &database.Film{}))

	_, err := f.module.Service().Create(context.Background(), f.user, CreateFilmRequest{Title: "X", ReleaseYear: 2000, PosterURL: "https://example.com/x.jpg"})
	assert.True(t, types.IsForbidden(err))
}

func TestBlankTitleRejected(t *testing.T) {
	f := newFixture(t)
	film := dbtest.CreateFilm(t, f.db, "Alien")

	w := apitest.Do(f.router, http.MethodPatch, "/films/"+film.ID, `{"title":"  "}`, "admin")
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, apitest.ErrorOf(t, w).Violations, "title should not be empty")

	_, err := f.module.Service().Create(context.Background(), f.admin, CreateFilmRequest{Title: "\t ", ReleaseYear: 2000, PosterURL: "https://example.com/x.jpg"})
	assert.Equal(t, types.ErrorCodeValidation, types.CodeOf(err))

	blank := " "
	_, err = f.module.Service().Update(context.Background(), f.admin, film.ID, UpdateFilmRequest{Title: &blank})
	assert.Equal(t, types.ErrorCodeValidation, types.CodeOf(err))

	stored, err := f.module.Service().Get(context.Background(), film.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alien", stored.Title)
	assert.EqualValues(t, 1, dbtest.Count(t, f.db, &database.Film{}))
}

func TestUpdateMergesPresentFields(t *testing.T) {
	f := newFixture(t)
	film := dbtest.CreateFilm(t, f.db, "Alien")

	w := apitest.Do(f.router, http.MethodPatch, "/films/"+film.ID, `{"synopsis":"In space."}`, "admin")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated database.Film
	apitest.Decode(t, w, &updated)
	assert.Equal(t, "Alien", updated.Title)
	assert.Equal(t, film.PosterURL, updated.PosterURL)
	require.NotNil(t, updated.Synopsis)
	assert.Equal(t, "In space.", *updated.Synopsis)

	w = apitest.Do(f.router, http.MethodPatch, "/films/"+utils.GenerateUUID(), `{"title":"B"}`, "admin")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	film := dbtest.CreateFilm(t, f.db, "Ran")

	w := apitest.Do(f.router, http.MethodDelete, "/films/"+film.ID, "", "admin")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":true}`, w.Body.String())

	w = apitest.Do(f.router, http.MethodDelete, "/films/"+film.ID, "", "admin")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, fmt.Sprintf("Film with ID %s not found", film.ID), apitest.ErrorOf(t, w).Message)
}

func TestSyncGenres(t *testing.T) {
	f := newFixture(t)
	svc := f.module.Service()
	ctx := context.Background()

	film := dbtest.CreateFilm(t, f.db, "Heat")
	drama := dbtest.CreateGenre(t, f.db, "Drama")
	crime := dbtest.CreateGenre(t, f.db, "Crime")
	war := dbtest.CreateGenre(t, f.db, "War")

	result, err := svc.SyncGenres(ctx, f.admin, film.ID, SyncGenresRequest{GenreIDs: []string{drama.ID, crime.ID}})
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Success: true, Count: 2}, *result)

	// Unknown ids are skipped and duplicates collapse; the old set is replaced.
	result, err = svc.SyncGenres(ctx, f.admin, film.ID, SyncGenresRequest{
		GenreIDs: []string{war.ID, war.ID, utils.GenerateUUID()},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)

	var links []database.FilmGenre
	require.NoError(t, f.db.Where("film_id = ?", film.ID).Find(&links).Error)
	require.Len(t, links, 1)
	assert.Equal(t, war.ID, links[0].GenreID)

	result, err = svc.SyncGenres(ctx, f.admin, film.ID, SyncGenresRequest{GenreIDs: []string{}})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.EqualValues(t, 0, dbtest.Count(t, f.db, &database.FilmGenre{}))

	_, err = svc.SyncGenres(ctx, f.admin, utils.GenerateUUID(), SyncGenresRequest{GenreIDs: []string{drama.ID}})
	assert.True(t, types.IsNotFound(err))
}

func TestSyncCreditsOverHTTP(t *testing.T) {
	f := newFixture(t)
	film := dbtest.CreateFilm(t, f.db, "Heat")
	pacino := dbtest.CreatePerson(t, f.db, "Al Pacino", database.PersonRoleActor)
	mann := dbtest.CreatePerson(t, f.db, "Michael Mann", database.PersonRoleDirector)

	body := fmt.Sprintf(`{"credits":[
		{"personId":%q,"creditType":"ACTOR","orderIndex":0,"characterName":"Vincent Hanna"},
		{"personId":%q,"creditType":"DIRECTOR"},
		{"personId":%q,"creditType":"ACTOR"},
		{"personId":%q,"creditType":"ACTOR"}
	]}`, pacino.ID, mann.ID, pacino.ID, utils.GenerateUUID())

	w := apitest.Do(f.router, http.MethodPut, "/films/"+film.ID+"/credits", body, "admin")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"success":true,"count":2}`, w.Body.String())

	w = apitest.Do(f.router, http.MethodPut, "/films/"+film.ID+"/credits",
		fmt.Sprintf(`{"credits":[{"personId":%q,"creditType":"WRITER"}]}`, pacino.ID), "admin")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, apitest.ErrorOf(t, w).Violations, "credits[0].creditType must be one of: ACTOR, DIRECTOR")

	w = apitest.Do(f.router, http.MethodPut, "/films/"+film.ID+"/genres", `{"genreIds":["nope"]}`, "admin")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, apitest.ErrorOf(t, w).Violations, "genreIds[0] must be a UUID")

	var credit database.FilmCredit
	require.NoError(t, f.db.Where("person_id = ? AND credit_type = ?", pacino.ID, database.CreditActor).First(&credit).Error)
	require.NotNil(t, credit.CharacterName)
	assert.Equal(t, "Vincent Hanna", *credit.CharacterName)
}

func TestGetDetail(t *testing.T) {
	f := newFixture(t)
	film := dbtest.CreateFilm(t, f.db, "Heat")
	genre := dbtest.CreateGenre(t, f.db, "Crime")
	person := dbtest.CreatePerson(t, f.db, "Robert De Niro", database.PersonRoleActor)
	ctx := context.Background()

	_, err := f.module.Service().SyncGenres(ctx, f.admin, film.ID, SyncGenresRequest{GenreIDs: []string{genre.ID}})
	require.NoError(t, err)
	_, err = f.module.Service().SyncCredits(ctx, f.admin, film.ID, SyncCreditsRequest{Credits: []CreditItem{
		{PersonID: person.ID, CreditType: database.CreditActor},
	}})
	require.NoError(t, err)

	first := &database.Comment{FilmID: film.ID, AuthorID: f.user.ID, CommentText: "first"}
	require.NoError(t, f.db.Create(first).Error)
	second := &database.Comment{FilmID: film.ID, AuthorID: f.user.ID, CommentText: "second"}
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	require.NoError(t, f.db.Create(second).Error)
	require.NoError(t, f.db.Create(&database.Review{FilmID: film.ID, AuthorID: f.admin.ID, Rating: 9, ReviewText: "Great"}).Error)

	w := apitest.Do(f.router, http.MethodGet, "/films/"+film.ID, "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var detail struct {
		Title      string `json:"title"`
		FilmGenres []struct {
			Genre struct{ Name string } `json:"genre"`
		} `json:"filmGenres"`
		FilmCredits []struct {
			CreditType string `json:"creditType"`
			Person     struct {
				FullName string `json:"fullName"`
			} `json:"person"`
		} `json:"filmCredits"`
		Reviews []struct {
			Rating int `json:"rating"`
			Author struct {
				Name string `json:"name"`
			} `json:"author"`
		} `json:"reviews"`
		Comments []map[string]interface{} `json:"comments"`
	}
	apitest.Decode(t, w, &detail)

	require.Len(t, detail.FilmGenres, 1)
	assert.Equal(t, "Crime", detail.FilmGenres[0].Genre.Name)
	require.Len(t, detail.FilmCredits, 1)
	assert.Equal(t, "Robert De Niro", detail.FilmCredits[0].Person.FullName)
	require.Len(t, detail.Reviews, 1)
	assert.Equal(t, "admin", detail.Reviews[0].Author.Name)

	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "second", detail.Comments[0]["commentText"])
	author := detail.Comments[0]["author"].(map[string]interface{})
	assert.Len(t, author, 2)
	assert.Equal(t, "user", author["name"])

	w = apitest.Do(f.router, http.MethodGet, "/films/"+utils.GenerateUUID(), "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
