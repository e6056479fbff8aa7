package mocks

import (
	"context"

	"go-event-ticketing/internal/model"

	"github.com/stretchr/testify/mock"
)

type PurchaseServiceMock struct {
	mock.Mock
}

func NewPurchaseServiceMock() *PurchaseServiceMock {
	return &PurchaseServiceMock{}
}

func (m *PurchaseServiceMock) Purchase(ctx context.Context, req model.PurchaseRequest) (*model.PurchaseConfirmation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PurchaseConfirmation), args.Error(1)
}

func (m *PurchaseServiceMock) GetByID(ctx context.Context, id int) (*model.Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Purchase), args.Error(1)
}

func (m *PurchaseServiceMock) List(ctx context.Context) ([]*model.Purchase, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Purchase), args.Error(1)
}

func (m *PurchaseServiceMock) ListByGuestEmail(ctx context.Context, email string) ([]*model.Purchase, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Purchase), args.Error(1)
}
