// Package router assembles the HTTP engine: middleware chain, public routes and the
// authenticated API.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"around_backend/internal/app/di"
	"around_backend/internal/platform/config"
	"around_backend/internal/platform/http/handler"
	"around_backend/internal/platform/http/middleware"
	jwtmw "around_backend/internal/platform/jwt"
)

// NewRouter builds the engine for h. The middleware order is request logger,
// error responder, CORS; the responder therefore sees failures from every later stage.
func NewRouter(cfg *config.Config, h *di.Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorResponder(cfg.IsProduction()))
	r.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))

	// 認証不要
	r.POST("/signup", h.Auth.Signup)
	r.POST("/signin", h.Auth.Login)
	r.GET("/health", handler.Health)
	r.HEAD("/health", handler.Health)
	r.OPTIONS("/health", handler.Health)

	// 認証必須のルート
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(h.Verifier))
	{
		auth.GET("/users", h.Users.List)
		auth.GET("/users/me", h.Users.Me)
		auth.GET("/users/:id", h.Users.GetByID)
		auth.PATCH("/users/me", h.Users.UpdateProfile)
		auth.PATCH("/users/me/avatar", h.Users.UpdateAvatar)

		auth.GET("/cards", h.Cards.List)
		auth.POST("/cards", h.Cards.Create)
		auth.DELETE("/cards/:cardId", h.Cards.Delete)
		auth.PUT("/cards/:cardId/likes", h.Cards.Like)
		auth.DELETE("/cards/:cardId/likes", h.Cards.Unlike)
	}

	r.NoRoute(middleware.NoRoute)
	return r
}

// corsConfig allows credentialed requests from origins. An empty list allows any origin.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPut,
			http.MethodPatch, http.MethodPost, http.MethodDelete,
		},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
