package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/readshelf/core/internal/pkg/clientinfo"
	"github.com/readshelf/core/internal/pkg/jwt"
	"github.com/readshelf/core/internal/pkg/response"
)

const (
	ContextKeyUserID   = "user_id"
	ContextKeyAuthType = "auth_type"
)

// Auth returns a middleware that enforces bearer JWT authentication.
func Auth(signer *jwt.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c)
			return
		}
		claims, err := signer.Parse(token)
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyAuthType, clientinfo.AuthTypeJWT)
		c.Next()
	}
}

// CurrentUserID extracts the authenticated user ID from context, 0 when absent.
func CurrentUserID(c *gin.Context) int {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(int)
	return id
}

// CurrentAuthType reports how the request was authenticated.
func CurrentAuthType(c *gin.Context) string {
	v, _ := c.Get(ContextKeyAuthType)
	s, _ := v.(string)
	if s == "" {
		return clientinfo.AuthTypeNone
	}
	return s
}

// IsAuthenticated returns true if the request has a valid auth token.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) > 0
}

func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		return NormalizeToken(auth)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
