package repository

import (
	"context"
	"fmt"

	"go-event-ticketing/internal/model"
	apperrors "go-event-ticketing/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PurchaseRepository interface {
	List(ctx context.Context) ([]*model.Purchase, error)
	FindByID(ctx context.Context, id int) (*model.Purchase, error)
	FindByGuestEmail(ctx context.Context, email string) ([]*model.Purchase, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, purchase *model.Purchase) (*model.Purchase, error)
	CreateItem(ctx context.Context, tx pgx.Tx, item *model.PurchaseItem) (*model.PurchaseItem, error)
}

type PurchaseRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewPurchaseRepository(pool *pgxpool.Pool) PurchaseRepository {
	return &PurchaseRepositoryImpl{
		pool: pool,
	}
}

func (r *PurchaseRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, purchase *model.Purchase) (*model.Purchase, error) {
	query := `
		INSERT INTO purchases (reference, guest_name, guest_email, guest_phone, total_cost, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, purchased_at
	`

	err := tx.QueryRow(ctx, query,
		purchase.Reference, purchase.GuestName, purchase.GuestEmail,
		purchase.GuestPhone, purchase.TotalCost, purchase.Status,
	).Scan(&purchase.ID, &purchase.PurchasedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}

	return purchase, nil
}

func (r *PurchaseRepositoryImpl) CreateItem(ctx context.Context, tx pgx.Tx, item *model.PurchaseItem) (*model.PurchaseItem, error) {
	query := `
		INSERT INTO purchase_items (purchase_id, event_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := tx.QueryRow(ctx, query,
		item.PurchaseID, item.EventID, item.Quantity, item.UnitPrice,
	).Scan(&item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create purchase item: %w", err)
	}

	return item, nil
}

func (r *PurchaseRepositoryImpl) List(ctx context.Context) ([]*model.Purchase, error) {
	query := `
		SELECT id, reference, guest_name, guest_email, guest_phone, total_cost, status, purchased_at
		FROM purchases
		ORDER BY purchased_at DESC
	`

	return r.collectWithItems(ctx, query)
}

func (r *PurchaseRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Purchase, error) {
	query := `
		SELECT id, reference, guest_name, guest_email, guest_phone, total_cost, status, purchased_at
		FROM purchases
		WHERE id = $1
	`

	var purchase model.Purchase
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&purchase.ID,
		&purchase.Reference,
		&purchase.GuestName,
		&purchase.GuestEmail,
		&purchase.GuestPhone,
		&purchase.TotalCost,
		&purchase.Status,
		&purchase.PurchasedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrPurchaseNotFound
		}
		return nil, err
	}

	if err := r.loadItems(ctx, []*model.Purchase{&purchase}); err != nil {
		return nil, err
	}

	return &purchase, nil
}

func (r *PurchaseRepositoryImpl) FindByGuestEmail(ctx context.Context, email string) ([]*model.Purchase, error) {
	query := `
		SELECT id, reference, guest_name, guest_email, guest_phone, total_cost, status, purchased_at
		FROM purchases
		WHERE guest_email = $1
		ORDER BY purchased_at DESC
	`

	return r.collectWithItems(ctx, query, email)
}

func (r *PurchaseRepositoryImpl) collectWithItems(ctx context.Context, query string, args ...interface{}) ([]*model.Purchase, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	purchases := make([]*model.Purchase, 0)
	for rows.Next() {
		var purchase model.Purchase
		err := rows.Scan(
			&purchase.ID,
			&purchase.Reference,
			&purchase.GuestName,
			&purchase.GuestEmail,
			&purchase.GuestPhone,
			&purchase.TotalCost,
			&purchase.Status,
			&purchase.PurchasedAt,
		)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, &purchase)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, purchases); err != nil {
		return nil, err
	}

	return purchases, nil
}

// loadItems attaches items (with event titles) to the given purchases in one
// query.
func (r *PurchaseRepositoryImpl) loadItems(ctx context.Context, purchases []*model.Purchase) error {
	if len(purchases) == 0 {
		return nil
	}

	ids := make([]int, len(purchases))
	byID := make(map[int]*model.Purchase, len(purchases))
	for i, p := range purchases {
		ids[i] = p.ID
		byID[p.ID] = p
	}

	query := `
		SELECT pi.id, pi.purchase_id, pi.event_id, pi.quantity, pi.unit_price, e.title
		FROM purchase_items pi
		JOIN events e ON e.id = pi.event_id
		WHERE pi.purchase_id = ANY($1)
		ORDER BY pi.id
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.PurchaseItem
		err := rows.Scan(
			&item.ID,
			&item.PurchaseID,
			&item.EventID,
			&item.Quantity,
			&item.UnitPrice,
			&item.EventTitle,
		)
		if err != nil {
			return err
		}
		if p, ok := byID[item.PurchaseID]; ok {
			p.Items = append(p.Items, &item)
		}
	}

	return rows.Err()
}
