package service

import (
	"context"

	"go-event-ticketing/internal/cache"
	"go-event-ticketing/internal/model"
	"go-event-ticketing/internal/repository"
	apperrors "go-event-ticketing/pkg/app_errors"
	"go-event-ticketing/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// upcomingEventsLimit caps the storefront's "next up" list.
const upcomingEventsLimit = 6

type EventService interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	Search(ctx context.Context, params model.SearchEventsParams) ([]*model.Event, error)
	GetByID(ctx context.Context, id int) (*model.Event, error)
	Update(ctx context.Context, id int, params model.UpdateEventParams) (*model.Event, error)
	Delete(ctx context.Context, id int) error
	Overview(ctx context.Context) (*model.CatalogOverview, error)
}

type EventServiceImpl struct {
	repo         repository.EventRepository
	categoryRepo repository.CategoryRepository
	overview     cache.OverviewCache
}

func NewEventService(
	repo repository.EventRepository,
	categoryRepo repository.CategoryRepository,
	overview cache.OverviewCache,
) EventService {
	return &EventServiceImpl{
		repo:         repo,
		categoryRepo: categoryRepo,
		overview:     overview,
	}
}

func (s *EventServiceImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	if event.Title == "" {
		return nil, apperrors.ErrInvalidInput
	}
	if err := validateEventFields(event); err != nil {
		return nil, err
	}
	if _, err := s.categoryRepo.FindByID(ctx, event.CategoryID); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	s.invalidateOverview(ctx)
	return created, nil
}

func (s *EventServiceImpl) Search(ctx context.Context, params model.SearchEventsParams) ([]*model.Event, error) {
	return s.repo.Search(ctx, params)
}

func (s *EventServiceImpl) GetByID(ctx context.Context, id int) (*model.Event, error) {
	return s.repo.FindByIDWithSales(ctx, id)
}

func (s *EventServiceImpl) Update(ctx context.Context, id int, params model.UpdateEventParams) (*model.Event, error) {
	if params.Title != nil && (*params.Title == "" || len(*params.Title) > model.MaxEventTitleLen) {
		return nil, apperrors.ErrInvalidInput
	}
	if params.Description != nil && len(*params.Description) > model.MaxEventDescriptionLen {
		return nil, apperrors.ErrInvalidInput
	}
	if params.TicketPrice != nil && !priceInRange(*params.TicketPrice) {
		return nil, apperrors.ErrInvalidInput
	}
	if params.AvailableTickets != nil && (*params.AvailableTickets < 0 || *params.AvailableTickets > model.MaxAvailableTickets) {
		return nil, apperrors.ErrInvalidInput
	}
	if params.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *params.CategoryID); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}

	s.invalidateOverview(ctx)
	return updated, nil
}

func (s *EventServiceImpl) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateOverview(ctx)
	return nil
}

// Overview serves the landing/admin stats through the redis cache; a miss
// recomputes from the database and repopulates it.
func (s *EventServiceImpl) Overview(ctx context.Context) (*model.CatalogOverview, error) {
	cached, err := s.overview.Get(ctx)
	if err != nil {
		logger.WithComponent("service").Warn("overview cache read failed", zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	totalEvents, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalCategories, err := s.categoryRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	soldOut, err := s.repo.ListSoldOut(ctx)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.repo.ListUpcoming(ctx, upcomingEventsLimit)
	if err != nil {
		return nil, err
	}

	overview := &model.CatalogOverview{
		TotalEvents:     totalEvents,
		TotalCategories: totalCategories,
		LowStockEvents:  lowStock,
		SoldOutEvents:   soldOut,
		UpcomingEvents:  upcoming,
	}

	if err := s.overview.Set(ctx, overview); err != nil {
		logger.WithComponent("service").Warn("overview cache write failed", zap.Error(err))
	}

	return overview, nil
}

func (s *EventServiceImpl) invalidateOverview(ctx context.Context) {
	if err := s.overview.Invalidate(ctx); err != nil {
		logger.WithComponent("service").Warn("overview cache invalidation failed", zap.Error(err))
	}
}

func validateEventFields(event *model.Event) error {
	if len(event.Title) > model.MaxEventTitleLen {
		return apperrors.ErrInvalidInput
	}
	if event.Description != nil && len(*event.Description) > model.MaxEventDescriptionLen {
		return apperrors.ErrInvalidInput
	}
	if !priceInRange(event.TicketPrice) {
		return apperrors.ErrInvalidInput
	}
	if event.AvailableTickets < 0 || event.AvailableTickets > model.MaxAvailableTickets {
		return apperrors.ErrInvalidInput
	}
	return nil
}

// priceInRange rejects free events; every purchase must carry a positive
// total, which the purchases table also enforces.
func priceInRange(price decimal.Decimal) bool {
	return price.IsPositive() && !price.GreaterThan(decimal.NewFromInt(model.MaxTicketPrice))
}
