package adapters

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"around_backend/internal/feature/users/domain"
)

// setupMongo connects to AROUND_TEST_MONGO_URI and returns a throwaway database.
func setupMongo(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("AROUND_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("AROUND_TEST_MONGO_URI not set")
	}
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, client.Ping(ctx, nil))

	database := client.Database("around_test_" + bson.NewObjectID().Hex())
	t.Cleanup(func() {
		_ = database.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return database
}

func TestUserMongo(t *testing.T) {
	repo := NewUserMongo(setupMongo(t))
	ctx := context.Background()
	require.NoError(t, repo.EnsureIndexes(ctx))

	u := newUser("mongo@example.com")
	require.NoError(t, repo.Create(ctx, u))
	assert.Len(t, u.ID, 24)

	t.Run("duplicate email", func(t *testing.T) {
		err := repo.Create(ctx, newUser("mongo@example.com"))
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})

	t.Run("find by email includes hash", func(t *testing.T) {
		got, err := repo.FindByEmail(ctx, "mongo@example.com")
		require.NoError(t, err)
		assert.Equal(t, "$2a$10$hash", got.Password)
	})

	t.Run("find by id hides hash", func(t *testing.T) {
		got, err := repo.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Password)
	})

	t.Run("find by id errors", func(t *testing.T) {
		_, err := repo.FindByID(ctx, bson.NewObjectID().Hex())
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		_, err = repo.FindByID(ctx, "bad")
		assert.ErrorIs(t, err, domain.ErrInvalidUserID)
	})

	t.Run("update profile and avatar", func(t *testing.T) {
		got, err := repo.UpdateProfile(ctx, u.ID, "Marie", "Chemist")
		require.NoError(t, err)
		assert.Equal(t, "Marie", got.Name)

		got, err = repo.UpdateAvatar(ctx, u.ID, "https://example.com/me.png")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/me.png", got.Avatar)
		assert.Empty(t, got.Password)

		_, err = repo.UpdateAvatar(ctx, bson.NewObjectID().Hex(), "https://example.com/me.png")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("list", func(t *testing.T) {
		users, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})
}
