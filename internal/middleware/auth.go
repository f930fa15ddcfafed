package middleware

import (
	"strings"

	"ihome-rentals/internal/auth"
	apperrors "ihome-rentals/internal/errors"

	"github.com/gin-gonic/gin"
)

// ActorKey is the gin context key holding the authenticated user id.
const ActorKey = "actor_id"

// AnonymousActor is the actor id of requests without a valid token.
const AnonymousActor int64 = -1

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Error(apperrors.NewSessionError("missing or malformed authorization header", nil))
			c.Abort()
			return
		}

		claims, err := auth.ValidateJWT(token, secret)
		if err != nil {
			c.Error(apperrors.NewSessionError("invalid token", err))
			c.Abort()
			return
		}

		c.Set(ActorKey, claims.UserID)
		c.Next()
	}
}

// OptionalAuth sets the actor when a valid token is present and AnonymousActor otherwise.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := AnonymousActor
		if token, ok := bearerToken(c); ok {
			if claims, err := auth.ValidateJWT(token, secret); err == nil {
				actor = claims.UserID
			}
		}
		c.Set(ActorKey, actor)
		c.Next()
	}
}

// ActorID returns the user id set by the auth middlewares.
func ActorID(c *gin.Context) int64 {
	if v, ok := c.Get(ActorKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return AnonymousActor
}
