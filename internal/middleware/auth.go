package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mantonx/cinevault/internal/api"
	"github.com/mantonx/cinevault/internal/policy"
	"github.com/mantonx/cinevault/internal/types"
)

const actorKey = "actor"

// TokenVerifier resolves a bearer token to the actor it was issued to
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*policy.Actor, error)
}

// Authenticate attaches the actor when a valid bearer token is present.
// Requests without a token, or with one that fails verification, pass
// through anonymously; protected routes reject them via RequireAuth.
func Authenticate(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		actor, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests with 401
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Actor(c) == nil {
			api.RespondWithError(c, types.NewUnauthorizedError("Unauthorized"))
			return
		}
		c.Next()
	}
}

// Actor returns the authenticated actor or nil
func Actor(c *gin.Context) *policy.Actor {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil
	}
	actor, _ := v.(*policy.Actor)
	return actor
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

// Authorize gates a route on the policy for actions that need no ownership
// information. Services enforce the same policy again before mutating.
func Authorize(action policy.Action, kind policy.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := policy.Enforce(Actor(c), action, policy.Resource{Kind: kind}); err != nil {
			api.RespondWithError(c, err)
			return
		}
		c.Next()
	}
}
