package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"go-event-ticketing/internal/cache"
	"go-event-ticketing/internal/model"
	"go-event-ticketing/internal/repository"
	apperrors "go-event-ticketing/pkg/app_errors"
	"go-event-ticketing/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PurchaseService commits guest checkouts. A purchase either fully persists
// (purchase row, its item, and the stock decrement) or leaves no trace.
type PurchaseService interface {
	Purchase(ctx context.Context, req model.PurchaseRequest) (*model.PurchaseConfirmation, error)
	GetByID(ctx context.Context, id int) (*model.Purchase, error)
	List(ctx context.Context) ([]*model.Purchase, error)
	ListByGuestEmail(ctx context.Context, email string) ([]*model.Purchase, error)
}

type PurchaseServiceImpl struct {
	pool      *pgxpool.Pool
	repo      repository.PurchaseRepository
	eventRepo repository.EventRepository
	overview  cache.OverviewCache
}

func NewPurchaseService(
	pool *pgxpool.Pool,
	repo repository.PurchaseRepository,
	eventRepo repository.EventRepository,
	overview cache.OverviewCache,
) PurchaseService {
	return &PurchaseServiceImpl{
		pool:      pool,
		repo:      repo,
		eventRepo: eventRepo,
		overview:  overview,
	}
}

// Purchase validates the request against current availability, then commits
// the purchase, its line item and the stock decrement in one transaction.
// The decrement re-checks availability inside the transaction, so two
// concurrent purchases can never drive the remaining count below zero; the
// loser of that race gets InvalidQuantityError just like a stale form would.
func (s *PurchaseServiceImpl) Purchase(ctx context.Context, req model.PurchaseRequest) (*model.PurchaseConfirmation, error) {
	event, err := s.eventRepo.FindByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	if req.Quantity <= 0 || req.Quantity > model.MaxQuantity || req.Quantity > event.AvailableTickets {
		return nil, &apperrors.InvalidQuantityError{Available: event.AvailableTickets}
	}

	if err := validateGuestInfo(req.GuestName, req.GuestEmail); err != nil {
		return nil, err
	}

	totalCost := event.TicketPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTransactionFailed, err)
	}
	defer tx.Rollback(ctx)

	purchase := &model.Purchase{
		Reference:  uuid.New(),
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		GuestPhone: req.GuestPhone,
		TotalCost:  totalCost,
		Status:     model.PurchaseStatusCompleted,
	}

	created, err := s.repo.Create(ctx, tx, purchase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTransactionFailed, err)
	}

	item := &model.PurchaseItem{
		PurchaseID: created.ID,
		EventID:    event.ID,
		Quantity:   req.Quantity,
		// Snapshot of the price at purchase time; later price edits must not
		// change this purchase.
		UnitPrice: event.TicketPrice,
	}

	if _, err := s.repo.CreateItem(ctx, tx, item); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTransactionFailed, err)
	}

	if err := s.eventRepo.DecrementAvailable(ctx, tx, event.ID, req.Quantity); err != nil {
		if errors.Is(err, apperrors.ErrInvalidQuantity) {
			// Lost the stock race after the pre-check. Re-read so the caller
			// can show what is actually left.
			available := 0
			if current, readErr := s.eventRepo.FindByID(ctx, event.ID); readErr == nil {
				available = current.AvailableTickets
			}
			return nil, &apperrors.InvalidQuantityError{Available: available}
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTransactionFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTransactionFailed, err)
	}

	// Availability buckets just changed; drop the cached overview. Uses a
	// fresh context so a cancelled request cannot leave the cache stale.
	if err := s.overview.Invalidate(context.Background()); err != nil {
		logger.WithComponent("service").Warn("overview cache invalidation failed", zap.Error(err))
	}

	return &model.PurchaseConfirmation{
		PurchaseID: created.ID,
		Reference:  created.Reference,
		TotalCost:  created.TotalCost,
		Lines: []model.PurchaseLine{
			{
				EventID:    event.ID,
				EventTitle: event.Title,
				Quantity:   item.Quantity,
				UnitPrice:  item.UnitPrice,
				LineTotal:  item.LineTotal(),
			},
		},
	}, nil
}

func (s *PurchaseServiceImpl) GetByID(ctx context.Context, id int) (*model.Purchase, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PurchaseServiceImpl) List(ctx context.Context) ([]*model.Purchase, error) {
	return s.repo.List(ctx)
}

func (s *PurchaseServiceImpl) ListByGuestEmail(ctx context.Context, email string) ([]*model.Purchase, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperrors.ErrInvalidGuestInfo
	}
	return s.repo.FindByGuestEmail(ctx, email)
}

func validateGuestInfo(name, email string) error {
	if name == "" || len(name) > model.MaxGuestNameLen {
		return apperrors.ErrInvalidGuestInfo
	}
	if email == "" {
		return apperrors.ErrInvalidGuestInfo
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperrors.ErrInvalidGuestInfo
	}
	return nil
}
