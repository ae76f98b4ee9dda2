// Package middleware holds the cross-cutting gin middlewares shared by every route.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"around_backend/internal/shared/apperror"
)

const internalMessage = "An error occurred on the server"

// ErrRouteNotFound is reported for requests that match no route.
var ErrRouteNotFound = apperror.NotFound("Requested resource not found")

// errorBody is the failure payload. Error and Stack are only set outside production.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

// Fail records err on the context and stops the chain. The responder writes the body.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorResponder is the only writer of failure responses. It must be registered before
// every middleware and handler that can fail. After the chain runs it maps the last
// recorded error to a status and body; panics are recovered into the same path.
func ErrorResponder(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				err := fmt.Errorf("panic: %v", rec)
				stack := string(debug.Stack())
				c.Abort()
				respond(c, err, production, stack)
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		respond(c, c.Errors.Last().Err, production, "")
	}
}

// NoRoute answers unmatched requests through the responder.
func NoRoute(c *gin.Context) {
	Fail(c, ErrRouteNotFound)
}

func respond(c *gin.Context, err error, production bool, stack string) {
	kind := apperror.KindOf(err)
	status := kind.Status()
	message := internalMessage
	if appErr, ok := apperror.From(err); ok && kind != apperror.KindInternal {
		message = appErr.Message
	}

	attrs := []any{
		"status", status,
		"kind", kind.String(),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"remote_addr", c.ClientIP(),
		"error", err.Error(),
	}
	if status >= http.StatusInternalServerError {
		if stack != "" {
			attrs = append(attrs, "stack", stack)
		}
		slog.Error("request failed", attrs...)
	} else {
		slog.Warn("request rejected", attrs...)
	}

	if c.Writer.Written() {
		return
	}

	body := errorBody{Message: message}
	if !production {
		body.Error = err.Error()
		body.Stack = stack
	}
	c.JSON(status, body)
}
