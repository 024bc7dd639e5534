package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mantonx/cinevault/internal/database"
	"github.com/mantonx/cinevault/internal/policy"
	"github.com/mantonx/cinevault/internal/types"
)

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) VerifyToken(ctx context.Context, token string) (*policy.Actor, error) {
	args := m.Called(ctx, token)
	actor, _ := args.Get(0).(*policy.Actor)
	return actor, args.Error(1)
}

func newRouter(verifier TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), CORS("http://localhost:5173"), Authenticate(verifier))

	r.GET("/public", func(c *gin.Context) {
		if a := Actor(c); a != nil {
			c.String(http.StatusOK, a.ID)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	r.GET("/private", RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, Actor(c).ID)
	})
	return r
}

func do(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	verifier := new(MockVerifier)
	verifier.On("VerifyToken", mock.Anything, "good").
		Return(&policy.Actor{ID: "u1", Role: database.RoleUser}, nil)
	verifier.On("VerifyToken", mock.Anything, "bad").
		Return(nil, types.NewUnauthorizedError("invalid token"))
	r := newRouter(verifier)

	t.Run("AnonymousPublic", func(t *testing.T) {
		w := do(r, http.MethodGet, "/public", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "anonymous", w.Body.String())
	})

	t.Run("ValidTokenAttachesActor", func(t *testing.T) {
		w := do(r, http.MethodGet, "/private", map[string]string{"Authorization": "Bearer good"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u1", w.Body.String())
	})

	t.Run("MissingTokenIs401", func(t *testing.T) {
		w := do(r, http.MethodGet, "/private", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("InvalidTokenIsAnonymousOnPublicRoutes", func(t *testing.T) {
		w := do(r, http.MethodGet, "/public", map[string]string{"Authorization": "Bearer bad"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "anonymous", w.Body.String())
	})

	t.Run("InvalidTokenIs401OnPrivateRoutes", func(t *testing.T) {
		w := do(r, http.MethodGet, "/private", map[string]string{"Authorization": "Bearer bad"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("NonBearerSchemeIgnored", func(t *testing.T) {
		w := do(r, http.MethodGet, "/public", map[string]string{"Authorization": "Basic dXNlcjpwYXNz"})
		assert.Equal(t, "anonymous", w.Body.String())
	})

	verifier.AssertExpectations(t)
}

func TestCORS(t *testing.T) {
	r := newRouter(new(MockVerifier))

	w := do(r, http.MethodOptions, "/public", map[string]string{"Origin": "http://localhost:5173"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = do(r, http.MethodGet, "/public", map[string]string{"Origin": "http://evil.example"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID(t *testing.T) {
	r := newRouter(new(MockVerifier))

	w := do(r, http.MethodGet, "/public", map[string]string{"X-Request-ID": "req-7"})
	assert.Equal(t, "req-7", w.Header().Get("X-Request-ID"))

	w = do(r, http.MethodGet, "/public", nil)
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

func TestAuthorizeRoute(t *testing.T) {
	verifier := new(MockVerifier)
	verifier.On("VerifyToken", mock.Anything, "admin").Return(&policy.Actor{ID: "a", Role: database.RoleAdmin}, nil)
	verifier.On("VerifyToken", mock.Anything, "user").Return(&policy.Actor{ID: "u", Role: database.RoleUser}, nil)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Authenticate(verifier))
	r.POST("/films", RequireAuth(), Authorize(policy.ActionCreate, policy.KindFilm), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/films", nil).Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPost, "/films", map[string]string{"Authorization": "Bearer user"}).Code)
	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/films", map[string]string{"Authorization": "Bearer admin"}).Code)
}
