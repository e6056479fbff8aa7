package service

import (
	"context"

	"go-event-ticketing/internal/model"
	"go-event-ticketing/internal/repository"
	apperrors "go-event-ticketing/pkg/app_errors"
)

type CategoryService interface {
	Create(ctx context.Context, category *model.Category) (*model.Category, error)
	List(ctx context.Context) ([]*model.Category, error)
	GetByID(ctx context.Context, id int) (*model.Category, error)
	Update(ctx context.Context, id int, params model.UpdateCategoryParams) (*model.Category, error)
	Delete(ctx context.Context, id int) error
}

type CategoryServiceImpl struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &CategoryServiceImpl{repo: repo}
}

func (s *CategoryServiceImpl) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	if category.Name == "" {
		return nil, apperrors.ErrInvalidInput
	}
	if err := validateCategoryFields(category.Name, category.Description); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, category)
}

func (s *CategoryServiceImpl) List(ctx context.Context) ([]*model.Category, error) {
	return s.repo.List(ctx)
}

func (s *CategoryServiceImpl) GetByID(ctx context.Context, id int) (*model.Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CategoryServiceImpl) Update(ctx context.Context, id int, params model.UpdateCategoryParams) (*model.Category, error) {
	name := ""
	if params.Name != nil {
		name = *params.Name
		if name == "" {
			return nil, apperrors.ErrInvalidInput
		}
	}
	if err := validateCategoryFields(name, params.Description); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, params)
}

func (s *CategoryServiceImpl) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func validateCategoryFields(name string, description *string) error {
	if len(name) > model.MaxCategoryNameLen {
		return apperrors.ErrInvalidInput
	}
	if description != nil && len(*description) > model.MaxCategoryDescriptionLen {
		return apperrors.ErrInvalidInput
	}
	return nil
}
