package events

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubRoutesByFilm(t *testing.T) {
	hub := NewHub(4, hclog.NewNullLogger())
	a := hub.Subscribe("film-a")
	b := hub.Subscribe("film-b")

	hub.Publish(NewCommentEvent(EventCommentCreated, "film-a", map[string]string{"id": "c1"}))

	select {
	case ev := <-a.C:
		assert.Equal(t, EventCommentCreated, ev.Type)
		assert.Equal(t, "film-a", ev.FilmID)
	default:
		t.Fatal("expected event for film-a")
	}
	assert.Len(t, b.C, 0)
}

func TestHubDropsSlowSubscriber(t *testing.T) {
	hub := NewHub(1, hclog.NewNullLogger())
	slow := hub.Subscribe("film")

	hub.Publish(NewCommentEvent(EventCommentCreated, "film", nil))
	hub.Publish(NewCommentEvent(EventCommentCreated, "film", nil))

	assert.Equal(t, 0, hub.Subscribers("film"))

	_, ok := <-slow.C
	assert.True(t, ok, "buffered event is still delivered")
	_, ok = <-slow.C
	assert.False(t, ok, "channel closed after drop")
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	hub := NewHub(0, hclog.NewNullLogger())
	sub := hub.Subscribe("film")
	hub.Unsubscribe(sub)
	hub.Unsubscribe(sub)
	assert.Equal(t, 0, hub.Subscribers("film"))

	hub.Subscribe("film")
	hub.Close()
	assert.Equal(t, 0, hub.Subscribers("film"))
}

func TestFeedHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub(4, hclog.NewNullLogger())
	feed := NewFeedHandler(hub, "*", hclog.NewNullLogger())

	r := gin.New()
	r.GET("/films/:id/comments/live", feed.ServeFilm)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/films/f1/comments/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Subscribers("f1") == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(NewCommentEvent(EventCommentDeleted, "f1", map[string]string{"id": "c9"}))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, EventCommentDeleted, got.Type)
	assert.Equal(t, "f1", got.FilmID)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Subscribers("f1") == 0 }, 2*time.Second, 10*time.Millisecond)
}
