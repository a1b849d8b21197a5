//go:build integration

package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"bookshelf/internal/database"
	"bookshelf/internal/model"
)

func newPostgres(t *testing.T) *database.DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.New(ctx, url, 4, 1)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.Migrate(ctx))
	_, err = db.Pool.Exec(ctx, `TRUNCATE reviews, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return db
}

func TestPostgresUserAndReviewRepositories(t *testing.T) {
	ctx := context.Background()
	db := newPostgres(t)
	users := NewUserRepository(db.Pool)
	reviews := NewReviewRepository(db.Pool)

	ada, err := users.Create(ctx, model.User{Name: "Ada", Email: "Ada@Example.com", PasswordHash: "hash"})
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", ada.Email)

	_, err = users.Create(ctx, model.User{Name: "Again", Email: "ada@example.com", PasswordHash: "hash"})
	require.ErrorIs(t, err, model.ErrUserAlreadyExists)

	found, err := users.FindByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	require.Equal(t, ada.ID, found.ID)
	require.Equal(t, "hash", found.PasswordHash)

	_, err = users.FindByID(ctx, ada.ID+1000)
	require.ErrorIs(t, err, model.ErrUserNotFound)

	created, err := reviews.Create(ctx, model.Review{UserID: ada.ID, BookTitle: "Dune", Rating: 5, Review: "Sand and spice everywhere", Mood: "excited"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	_, err = reviews.Create(ctx, model.Review{UserID: ada.ID + 1000, BookTitle: "Ghost", Rating: 1, Review: "Nobody wrote this", Mood: "sad"})
	require.ErrorIs(t, err, model.ErrUserNotFound)

	listed, err := reviews.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "Ada", listed[0].UserName)

	require.NoError(t, reviews.Delete(ctx, created.ID))
	require.ErrorIs(t, reviews.Delete(ctx, created.ID), model.ErrReviewNotFound)
}
