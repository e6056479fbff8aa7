package mocks

import (
	"context"

	"go-event-ticketing/internal/model"

	"github.com/stretchr/testify/mock"
)

type OverviewCacheMock struct {
	mock.Mock
}

func NewOverviewCacheMock() *OverviewCacheMock {
	return &OverviewCacheMock{}
}

func (m *OverviewCacheMock) Get(ctx context.Context) (*model.CatalogOverview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CatalogOverview), args.Error(1)
}

func (m *OverviewCacheMock) Set(ctx context.Context, overview *model.CatalogOverview) error {
	args := m.Called(ctx, overview)
	return args.Error(0)
}

func (m *OverviewCacheMock) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
