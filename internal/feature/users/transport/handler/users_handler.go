// Package handler provides the HTTP handlers of the users feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"around_backend/internal/feature/users/domain/entity"
	"around_backend/internal/feature/users/transport/http/dto"
	jwtmw "around_backend/internal/platform/jwt"
	"around_backend/internal/platform/validation"
)

// UsersUsecase defines the profile operations used by the handlers.
type UsersUsecase interface {
	List(ctx context.Context) ([]entity.User, error)
	Get(ctx context.Context, id string) (*entity.User, error)
	UpdateProfile(ctx context.Context, id, name, about string) (*entity.User, error)
	UpdateAvatar(ctx context.Context, id, avatar string) (*entity.User, error)
}

// UsersHandler serves the /users routes. Every route requires authentication.
type UsersHandler struct {
	users UsersUsecase
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(users UsersUsecase) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /users.
func (h *UsersHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserListResponse(users))
}

// Me handles GET /users/me.
func (h *UsersHandler) Me(c *gin.Context) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		_ = c.Error(jwtmw.ErrAuthorizationRequired)
		return
	}
	h.respondUser(c, userID)
}

// GetByID handles GET /users/:id.
func (h *UsersHandler) GetByID(c *gin.Context) {
	var params dto.UserIDParams
	if err := validation.BindURI(c, &params); err != nil {
		_ = c.Error(err)
		return
	}
	h.respondUser(c, params.ID)
}

// UpdateProfile handles PATCH /users/me.
func (h *UsersHandler) UpdateProfile(c *gin.Context) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		_ = c.Error(jwtmw.ErrAuthorizationRequired)
		return
	}
	var req dto.UpdateProfileRequest
	if err := validation.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), userID, req.Name, req.About)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(*user))
}

// UpdateAvatar handles PATCH /users/me/avatar.
func (h *UsersHandler) UpdateAvatar(c *gin.Context) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		_ = c.Error(jwtmw.ErrAuthorizationRequired)
		return
	}
	var req dto.UpdateAvatarRequest
	if err := validation.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.users.UpdateAvatar(c.Request.Context(), userID, req.Avatar)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(*user))
}

func (h *UsersHandler) respondUser(c *gin.Context, id string) {
	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(*user))
}
