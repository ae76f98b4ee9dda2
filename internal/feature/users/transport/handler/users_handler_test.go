package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"around_backend/internal/feature/users/domain"
	"around_backend/internal/feature/users/domain/entity"
	jwtmw "around_backend/internal/platform/jwt"
	"around_backend/internal/platform/http/middleware"
	"around_backend/internal/platform/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := validation.Register(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

const (
	meID    = "65f1c0a2b3d4e5f607182930"
	otherID = "65f1c0a2b3d4e5f607182931"
)

// mockUsersUsecase is a function-field mock of UsersUsecase.
type mockUsersUsecase struct {
	ListFunc          func(ctx context.Context) ([]entity.User, error)
	GetFunc           func(ctx context.Context, id string) (*entity.User, error)
	UpdateProfileFunc func(ctx context.Context, id, name, about string) (*entity.User, error)
	UpdateAvatarFunc  func(ctx context.Context, id, avatar string) (*entity.User, error)
}

func (m *mockUsersUsecase) List(ctx context.Context) ([]entity.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []entity.User{}, nil
}

func (m *mockUsersUsecase) Get(ctx context.Context, id string) (*entity.User, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUsersUsecase) UpdateProfile(ctx context.Context, id, name, about string) (*entity.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, id, name, about)
	}
	return nil, errors.New("not expected")
}

func (m *mockUsersUsecase) UpdateAvatar(ctx context.Context, id, avatar string) (*entity.User, error) {
	if m.UpdateAvatarFunc != nil {
		return m.UpdateAvatarFunc(ctx, id, avatar)
	}
	return nil, errors.New("not expected")
}

func setupRouter(uc UsersUsecase) *gin.Engine {
	h := NewUsersHandler(uc)

	r := gin.New()
	r.Use(middleware.ErrorResponder(false))
	r.Use(func(c *gin.Context) { c.Set(jwtmw.ContextUserID, meID) })
	r.GET("/users", h.List)
	r.GET("/users/me", h.Me)
	r.GET("/users/:id", h.GetByID)
	r.PATCH("/users/me", h.UpdateProfile)
	r.PATCH("/users/me/avatar", h.UpdateAvatar)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, gin.H) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out gin.H
	if len(bytes.TrimSpace(w.Body.Bytes())) > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func stored(id string) *entity.User {
	return &entity.User{ID: id, Name: "Ann", About: "Pilot", Avatar: "https://example.com/a.png", Email: "ann@example.com", Password: "$2a$10$secret"}
}

func TestUsersHandler_List(t *testing.T) {
	t.Parallel()

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()
		w, _ := do(t, setupRouter(&mockUsersUsecase{}), http.MethodGet, "/users", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("no password in list", func(t *testing.T) {
		t.Parallel()
		uc := &mockUsersUsecase{ListFunc: func(ctx context.Context) ([]entity.User, error) {
			return []entity.User{*stored(meID), *stored(otherID)}, nil
		}}
		w, _ := do(t, setupRouter(uc), http.MethodGet, "/users", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "password")
		assert.NotContains(t, w.Body.String(), "$2a$10$")
	})
}

func TestUsersHandler_Me(t *testing.T) {
	t.Parallel()

	var requested string
	uc := &mockUsersUsecase{GetFunc: func(ctx context.Context, id string) (*entity.User, error) {
		requested = id
		return stored(id), nil
	}}

	w, body := do(t, setupRouter(uc), http.MethodGet, "/users/me", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, meID, requested)
	assert.Equal(t, gin.H{
		"_id":    meID,
		"name":   "Ann",
		"about":  "Pilot",
		"avatar": "https://example.com/a.png",
		"email":  "ann@example.com",
	}, body)
}

func TestUsersHandler_GetByID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		getFn      func(ctx context.Context, id string) (*entity.User, error)
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "found",
			path:       "/users/" + otherID,
			getFn:      func(ctx context.Context, id string) (*entity.User, error) { return stored(id), nil },
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid hex id",
			path:       "/users/not-a-valid-hex-id",
			wantStatus: http.StatusBadRequest,
			wantMsg:    `"id" must be a 24 character hex id`,
		},
		{
			name:       "not found",
			path:       "/users/" + otherID,
			wantStatus: http.StatusNotFound,
			wantMsg:    "User not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, body := do(t, setupRouter(&mockUsersUsecase{GetFunc: tt.getFn}), http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, body["message"])
			}
		})
	}
}

func TestUsersHandler_UpdateProfile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantMsg    string
	}{
		{"success", gin.H{"name": "Marie", "about": "Chemist"}, http.StatusOK, ""},
		{"name too short", gin.H{"name": "M", "about": "Chemist"}, http.StatusBadRequest, `"name" length must be at least 2 characters long`},
		{"about missing", gin.H{"name": "Marie"}, http.StatusBadRequest, `"about" is required`},
		{"unknown field", gin.H{"name": "Marie", "about": "Chemist", "email": "x@y.z"}, http.StatusBadRequest, `"email" is not allowed`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			called := false
			uc := &mockUsersUsecase{UpdateProfileFunc: func(ctx context.Context, id, name, about string) (*entity.User, error) {
				called = true
				u := stored(id)
				u.Name, u.About = name, about
				return u, nil
			}}

			w, body := do(t, setupRouter(uc), http.MethodPatch, "/users/me", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, body["message"])
				assert.False(t, called, "usecase must not run on invalid input")
				return
			}
			assert.Equal(t, "Marie", body["name"])
			assert.Equal(t, meID, body["_id"])
		})
	}
}

func TestUsersHandler_UpdateAvatar(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		uc := &mockUsersUsecase{UpdateAvatarFunc: func(ctx context.Context, id, avatar string) (*entity.User, error) {
			u := stored(id)
			u.Avatar = avatar
			return u, nil
		}}
		w, body := do(t, setupRouter(uc), http.MethodPatch, "/users/me/avatar", gin.H{"avatar": "https://example.com/new.jpg"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://example.com/new.jpg", body["avatar"])
	})

	t.Run("invalid url", func(t *testing.T) {
		t.Parallel()
		w, body := do(t, setupRouter(&mockUsersUsecase{}), http.MethodPatch, "/users/me/avatar", gin.H{"avatar": "not a url"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, `"avatar" must be a valid uri`, body["message"])
	})

	t.Run("record vanished", func(t *testing.T) {
		t.Parallel()
		uc := &mockUsersUsecase{UpdateAvatarFunc: func(ctx context.Context, id, avatar string) (*entity.User, error) {
			return nil, domain.ErrUserNotFound
		}}
		w, _ := do(t, setupRouter(uc), http.MethodPatch, "/users/me/avatar", gin.H{"avatar": "https://example.com/new.jpg"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
