package modulemanager

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModule struct {
	id       string
	stopped  *[]string
	failStop bool
}

func (f *fakeModule) ID() string   { return f.id }
func (f *fakeModule) Name() string { return "fake " + f.id }
func (f *fakeModule) RegisterRoutes(router gin.IRouter) {
	router.GET("/"+f.id, func(c *gin.Context) { c.String(http.StatusOK, f.id) })
}
func (f *fakeModule) Shutdown(ctx context.Context) error {
	*f.stopped = append(*f.stopped, f.id)
	if f.failStop {
		return errors.New("stuck")
	}
	return nil
}

func TestManager(t *testing.T) {
	var stopped []string
	a := &fakeModule{id: "a", stopped: &stopped}
	b := &fakeModule{id: "b", stopped: &stopped, failStop: true}

	m, err := NewManager(hclog.NewNullLogger(), a, b)
	require.NoError(t, err)
	assert.Len(t, m.Modules(), 2)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	m.RegisterRoutes(r)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/b", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, "b", w.Body.String())

	err = m.Shutdown(context.Background())
	assert.ErrorContains(t, err, "b: stuck")
	assert.Equal(t, []string{"b", "a"}, stopped)
}

func TestDuplicateIDs(t *testing.T) {
	var stopped []string
	_, err := NewManager(hclog.NewNullLogger(), &fakeModule{id: "x", stopped: &stopped}, &fakeModule{id: "x", stopped: &stopped})
	assert.Error(t, err)
}
