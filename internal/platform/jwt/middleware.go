package jwtmw

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"around_backend/internal/platform/http/middleware"
	"around_backend/internal/shared/apperror"
)

// ContextUserID is the gin context key holding the authenticated user id.
const ContextUserID = "userID"

// ErrAuthorizationRequired is the single failure returned for every rejected token.
var ErrAuthorizationRequired = apperror.Unauthorized("Authorization required")

// TokenVerifier validates a raw token and returns its subject.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// AuthRequired returns a middleware that admits only requests carrying a valid bearer token.
// Rejections go through middleware.Fail so the error responder writes the body.
func AuthRequired(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			reject(c, "missing bearer token")
			return
		}

		userID, err := v.VerifyToken(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			reject(c, err.Error())
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserIDFrom returns the authenticated user id stored by AuthRequired.
func UserIDFrom(c *gin.Context) (string, bool) {
	id := c.GetString(ContextUserID)
	return id, id != ""
}

func reject(c *gin.Context, reason string) {
	slog.Debug("authorization rejected", "reason", reason, "path", c.Request.URL.Path, "remote_addr", c.ClientIP())
	middleware.Fail(c, ErrAuthorizationRequired)
}
