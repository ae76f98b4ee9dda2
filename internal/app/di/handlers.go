package di

import (
	"github.com/redis/go-redis/v9"

	authhandler "around_backend/internal/feature/auth/transport/handler"
	authusecase "around_backend/internal/feature/auth/usecase"
	cardshandler "around_backend/internal/feature/cards/transport/handler"
	cardsusecase "around_backend/internal/feature/cards/usecase"
	usershandler "around_backend/internal/feature/users/transport/handler"
	usersusecase "around_backend/internal/feature/users/usecase"
	"around_backend/internal/platform/cache"
	"around_backend/internal/platform/config"
	jwtmw "around_backend/internal/platform/jwt"
)

// Handlers groups the HTTP handlers and the token verifier the router needs.
type Handlers struct {
	Auth     *authhandler.AuthHandler
	Users    *usershandler.UsersHandler
	Cards    *cardshandler.CardsHandler
	Verifier jwtmw.TokenVerifier
}

// NewHandlers wires usecases and handlers on top of stores.
// A non-nil rdb puts the card list cache in front of both repositories.
func NewHandlers(cfg *config.Config, stores *Stores, rdb *redis.Client) *Handlers {
	var (
		users usersusecase.UserRepository = stores.Users
		cards cardsusecase.CardRepository = stores.Cards
	)
	if rdb != nil {
		users = cache.NewCachingUserRepository(rdb, stores.Users)
		cards = cache.NewCachingCardRepository(rdb, cfg.Redis.CardsCacheTTL, stores.Cards)
	}

	generator := jwtmw.NewGenerator(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	return &Handlers{
		Auth:     authhandler.NewAuthHandler(authusecase.NewAuthUsecase(stores.Users, generator)),
		Users:    usershandler.NewUsersHandler(usersusecase.NewUsersUsecase(users)),
		Cards:    cardshandler.NewCardsHandler(cardsusecase.NewCardsUsecase(cards)),
		Verifier: jwtmw.NewVerifier(cfg.Auth.JWTSecret),
	}
}
