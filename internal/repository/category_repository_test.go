package repository_test

import (
	"context"
	"testing"

	"go-event-ticketing/internal/model"
	"go-event-ticketing/internal/repository"
	apperrors "go-event-ticketing/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository_CreateAndList(t *testing.T) {
	requireTestDB(t)
	setupTestWithTruncate(t)

	ctx := context.Background()
	repo := repository.NewCategoryRepository(testDB)

	desc := "Concerts and live performances"
	created, err := repo.Create(ctx, &model.Category{Name: "Music", Description: &desc})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = repo.Create(ctx, &model.Category{Name: "Technology"})
	require.NoError(t, err)

	categories, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Music", categories[0].Name)
	require.NotNil(t, categories[0].Description)
	assert.Equal(t, desc, *categories[0].Description)
}

func TestCategoryRepository_Update(t *testing.T) {
	requireTestDB(t)
	setupTestWithTruncate(t)

	ctx := context.Background()
	repo := repository.NewCategoryRepository(testDB)
	id := createTestCategory(t, "Music")

	newName := "Music & Arts"
	updated, err := repo.Update(ctx, id, model.UpdateCategoryParams{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Music & Arts", updated.Name)

	_, err = repo.Update(ctx, 99999, model.UpdateCategoryParams{Name: &newName})
	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)
}

func TestCategoryRepository_Delete(t *testing.T) {
	requireTestDB(t)
	setupTestWithTruncate(t)

	ctx := context.Background()
	repo := repository.NewCategoryRepository(testDB)

	t.Run("deletes unused category", func(t *testing.T) {
		id := createTestCategory(t, "Workshops")

		err := repo.Delete(ctx, id)
		require.NoError(t, err)

		_, err = repo.FindByID(ctx, id)
		assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)
	})

	t.Run("refuses category with events", func(t *testing.T) {
		id := createTestCategory(t, "Music")
		createTestEvent(t, "Live Jazz Night", id, 49.99, 100)

		err := repo.Delete(ctx, id)
		assert.ErrorIs(t, err, apperrors.ErrCategoryInUse)
	})

	t.Run("unknown category", func(t *testing.T) {
		err := repo.Delete(ctx, 99999)
		assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)
	})
}
