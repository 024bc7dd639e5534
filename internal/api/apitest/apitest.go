// Package apitest builds gin routers for handler tests.
package apitest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mantonx/cinevault/internal/api"
	"github.com/mantonx/cinevault/internal/middleware"
	"github.com/mantonx/cinevault/internal/policy"
	"github.com/mantonx/cinevault/internal/types"
)

// Tokens maps bearer tokens to the actors they stand for
type Tokens map[string]*policy.Actor

// VerifyToken implements middleware.TokenVerifier
func (t Tokens) VerifyToken(_ context.Context, token string) (*policy.Actor, error) {
	if actor, ok := t[token]; ok {
		return actor, nil
	}
	return nil, types.NewUnauthorizedError("Unauthorized")
}

// NewRouter returns a test-mode engine with error recovery and token auth
// applied, then lets register mount its routes.
func NewRouter(tokens Tokens, register func(gin.IRouter)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(api.ErrorMiddleware(), middleware.Authenticate(tokens))
	register(r)
	return r
}

// Do performs a request with an optional JSON body and bearer token
func Do(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Decode unmarshals the recorded body into v
func Decode(t testing.TB, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

// ErrorOf decodes an error envelope
func ErrorOf(t testing.TB, w *httptest.ResponseRecorder) api.ErrorDetails {
	t.Helper()
	var resp api.ErrorResponse
	Decode(t, w, &resp)
	return resp.Error
}
