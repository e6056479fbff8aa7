package service_test

import (
	"context"
	"strings"
	"testing"

	"go-event-ticketing/internal/model"
	repoMocks "go-event-ticketing/internal/repository/mocks"
	"go-event-ticketing/internal/service"
	apperrors "go-event-ticketing/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := repoMocks.NewCategoryRepositoryMock()
		svc := service.NewCategoryService(repo)

		category := &model.Category{Name: "Workshop"}
		repo.On("Create", ctx, category).Return(category, nil).Once()

		created, err := svc.Create(ctx, category)

		require.NoError(t, err)
		assert.Equal(t, "Workshop", created.Name)
		repo.AssertExpectations(t)
	})

	t.Run("missing name", func(t *testing.T) {
		repo := repoMocks.NewCategoryRepositoryMock()
		svc := service.NewCategoryService(repo)

		_, err := svc.Create(ctx, &model.Category{})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("name too long", func(t *testing.T) {
		repo := repoMocks.NewCategoryRepositoryMock()
		svc := service.NewCategoryService(repo)

		_, err := svc.Create(ctx, &model.Category{Name: strings.Repeat("x", model.MaxCategoryNameLen+1)})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("description too long", func(t *testing.T) {
		repo := repoMocks.NewCategoryRepositoryMock()
		svc := service.NewCategoryService(repo)

		description := strings.Repeat("x", model.MaxCategoryDescriptionLen+1)
		_, err := svc.Create(ctx, &model.Category{Name: "Workshop", Description: &description})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestCategoryService_Delete_PropagatesInUse(t *testing.T) {
	ctx := context.Background()
	repo := repoMocks.NewCategoryRepositoryMock()
	svc := service.NewCategoryService(repo)

	repo.On("Delete", ctx, 7).Return(apperrors.ErrCategoryInUse).Once()

	err := svc.Delete(ctx, 7)

	assert.ErrorIs(t, err, apperrors.ErrCategoryInUse)
	repo.AssertExpectations(t)
}
