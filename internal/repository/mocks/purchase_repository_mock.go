package mocks

import (
	"context"

	"go-event-ticketing/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type PurchaseRepositoryMock struct {
	mock.Mock
}

func NewPurchaseRepositoryMock() *PurchaseRepositoryMock {
	return &PurchaseRepositoryMock{}
}

func (m *PurchaseRepositoryMock) List(ctx context.Context) ([]*model.Purchase, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Purchase), args.Error(1)
}

func (m *PurchaseRepositoryMock) FindByID(ctx context.Context, id int) (*model.Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Purchase), args.Error(1)
}

func (m *PurchaseRepositoryMock) FindByGuestEmail(ctx context.Context, email string) ([]*model.Purchase, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Purchase), args.Error(1)
}

func (m *PurchaseRepositoryMock) Create(ctx context.Context, tx pgx.Tx, purchase *model.Purchase) (*model.Purchase, error) {
	args := m.Called(ctx, tx, purchase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Purchase), args.Error(1)
}

func (m *PurchaseRepositoryMock) CreateItem(ctx context.Context, tx pgx.Tx, item *model.PurchaseItem) (*model.PurchaseItem, error) {
	args := m.Called(ctx, tx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PurchaseItem), args.Error(1)
}
