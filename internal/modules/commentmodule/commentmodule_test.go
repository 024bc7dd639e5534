package commentmodule

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mantonx/cinevault/internal/api/apitest"
	"github.com/mantonx/cinevault/internal/database"
	"github.com/mantonx/cinevault/internal/database/dbtest"
	"github.com/mantonx/cinevault/internal/events"
	"github.com/mantonx/cinevault/internal/policy"
	"github.com/mantonx/cinevault/internal/types"
	"github.com/mantonx/cinevault/internal/utils"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(event events.Event) {
	m.Called(event)
}

func actorOf(u *database.User) *policy.Actor {
	return &policy.Actor{ID: u.ID, Name: u.Name, Role: u.Role}
}

func TestCommentLifecycle(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	alice := actorOf(dbtest.CreateUser(t, db, "alice", database.RoleUser))
	bob := actorOf(dbtest.CreateUser(t, db, "bob", database.RoleUser))
	admin := actorOf(dbtest.CreateUser(t, db, "admin", database.RoleAdmin))
	film := dbtest.CreateFilm(t, db, "Playtime")

	pub := &MockPublisher{}
	pub.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.EventCommentCreated && e.FilmID == film.ID
	})).Return().Twice()
	pub.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.EventCommentDeleted
	})).Return().Twice()

	svc := NewService(NewRepository(db), pub, hclog.NewNullLogger())

	c1, err := svc.Create(ctx, alice, film.ID, CommentRequest{CommentText: "Loved the set."})
	require.NoError(t, err)
	require.NotNil(t, c1.Author)
	assert.Equal(t, "alice", c1.Author.Name)

	c2, err := svc.Create(ctx, alice, film.ID, CommentRequest{CommentText: "Watched it again."})
	require.NoError(t, err)

	_, err = svc.Create(ctx, alice, utils.GenerateUUID(), CommentRequest{CommentText: "Where?"})
	assert.True(t, types.IsNotFound(err))

	_, err = svc.Create(ctx, nil, film.ID, CommentRequest{CommentText: "anon"})
	assert.Equal(t, types.ErrorCodeUnauthorized, types.CodeOf(err))

	err = svc.Delete(ctx, bob, c1.ID)
	require.True(t, types.IsForbidden(err))
	assert.Equal(t, "You can only delete your own comments", err.(*types.AppError).Message)
	assert.EqualValues(t, 2, dbtest.Count(t, db, &database.Comment{}))

	require.NoError(t, svc.Delete(ctx, alice, c1.ID))
	require.NoError(t, svc.Delete(ctx, admin, c2.ID))
	assert.EqualValues(t, 0, dbtest.Count(t, db, &database.Comment{}))

	assert.True(t, types.IsNotFound(svc.Delete(ctx, admin, c2.ID)))
	pub.AssertExpectations(t)
}

func TestListNewestFirst(t *testing.T) {
	db := dbtest.New(t)
	m := NewModule(db, "*", hclog.NewNullLogger())
	r := apitest.NewRouter(apitest.Tokens{}, m.RegisterRoutes)

	user := dbtest.CreateUser(t, db, "ana", database.RoleUser)
	film := dbtest.CreateFilm(t, db, "Mon Oncle")
	base := time.Now().Add(-time.Hour)
	for i, text := range []string{"one", "two", "three"} {
		c := &database.Comment{FilmID: film.ID, AuthorID: user.ID, CommentText: text}
		c.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.Create(c).Error)
	}

	w := apitest.Do(r, http.MethodGet, "/films/"+film.ID+"/comments", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var comments []map[string]interface{}
	apitest.Decode(t, w, &comments)
	require.Len(t, comments, 3)
	assert.Equal(t, "three", comments[0]["commentText"])
	assert.Equal(t, "one", comments[2]["commentText"])
	assert.Equal(t, map[string]interface{}{"id": user.ID, "name": "ana"}, comments[0]["author"])
	assert.NotContains(t, w.Body.String(), "ana@example.com")
}

func TestCommentRoutes(t *testing.T) {
	db := dbtest.New(t)
	m := NewModule(db, "*", hclog.NewNullLogger())
	defer m.Shutdown(context.Background())

	alice := actorOf(dbtest.CreateUser(t, db, "alice", database.RoleUser))
	bob := actorOf(dbtest.CreateUser(t, db, "bob", database.RoleUser))
	r := apitest.NewRouter(apitest.Tokens{"alice": alice, "bob": bob}, m.RegisterRoutes)
	film := dbtest.CreateFilm(t, db, "Tokyo Story")

	sub := m.Hub().Subscribe(film.ID)

	w := apitest.Do(r, http.MethodPost, "/films/"+film.ID+"/comments", `{"commentText":"Quiet."}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = apitest.Do(r, http.MethodPost, "/films/"+film.ID+"/comments", `{}`, "alice")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, apitest.ErrorOf(t, w).Violations, "commentText is required")

	w = apitest.Do(r, http.MethodPost, "/films/"+film.ID+"/comments", `{"commentText":"Quiet."}`, "alice")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created database.Comment
	apitest.Decode(t, w, &created)

	select {
	case ev := <-sub.C:
		assert.Equal(t, events.EventCommentCreated, ev.Type)
	default:
		t.Fatal("expected a live event for the new comment")
	}

	w = apitest.Do(r, http.MethodDelete, "/comments/"+created.ID, "", "bob")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = apitest.Do(r, http.MethodDelete, "/comments/"+created.ID, "", "alice")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":true}`, w.Body.String())
}
