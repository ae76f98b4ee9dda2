// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"around_backend/internal/feature/auth/transport/http/dto"
	"around_backend/internal/feature/auth/usecase"
	"around_backend/internal/feature/users/domain/entity"
	usersdto "around_backend/internal/feature/users/transport/http/dto"
	"around_backend/internal/platform/validation"
)

// AuthUsecase defines the account operations used by the handlers.
type AuthUsecase interface {
	Signup(ctx context.Context, in usecase.SignupInput) (*entity.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthHandler serves the public /signup and /signin routes.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup handles POST /signup and responds 201 with the public user.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := validation.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), usecase.SignupInput{
		Name:     req.Name.Value,
		About:    req.About.Value,
		Avatar:   req.Avatar.Value,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	slog.Info("user signup successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, usersdto.NewUserResponse(*user))
}

// Login handles POST /signin and responds with a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := validation.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	slog.Info("user login successful", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}
