// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"log/slog"

	authusecase "around_backend/internal/feature/auth/usecase"
	"around_backend/internal/feature/cards/adapters"
	cardsusecase "around_backend/internal/feature/cards/usecase"
	useradapters "around_backend/internal/feature/users/adapters"
	usersusecase "around_backend/internal/feature/users/usecase"
	"around_backend/internal/platform/config"
	"around_backend/internal/platform/db"
	platformmongo "around_backend/internal/platform/mongo"
)

// UserStore is the user repository every backend provides to auth and profiles.
type UserStore interface {
	authusecase.UserRepository
	usersusecase.UserRepository
}

// Stores holds the repositories of the selected backend.
type Stores struct {
	Users UserStore
	Cards cardsusecase.CardRepository
	// Close releases the backend connection.
	Close func(ctx context.Context) error
}

// NewStores connects the backend selected by cfg.Store.Driver and prepares its schema.
func NewStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.Store.Driver {
	case "mongo":
		return newMongoStores(ctx, cfg)
	case "postgres", "sqlite":
		return newGormStores(cfg)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

func newMongoStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	client, database, err := platformmongo.Connect(ctx, cfg.Mongo)
	if err != nil {
		return nil, err
	}
	users := useradapters.NewUserMongo(database)
	cards := adapters.NewCardMongo(database)

	if err := users.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	if err := cards.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &Stores{Users: users, Cards: cards, Close: client.Disconnect}, nil
}

func newGormStores(cfg *config.Config) (*Stores, error) {
	gdb, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	if cfg.Store.RunMigrations {
		if err := db.Migrate(gdb, &useradapters.UserModel{}, &adapters.CardModel{}, &adapters.CardLikeModel{}); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	} else {
		slog.Info("Skipping migrations", "driver", cfg.Store.Driver)
	}

	return &Stores{
		Users: useradapters.NewUserGorm(gdb),
		Cards: adapters.NewCardGorm(gdb),
		Close: func(context.Context) error { return sqlDB.Close() },
	}, nil
}
