package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-event-ticketing/internal/model"
	apperrors "go-event-ticketing/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	Search(ctx context.Context, params model.SearchEventsParams) ([]*model.Event, error)
	FindByID(ctx context.Context, id int) (*model.Event, error)
	FindByIDWithSales(ctx context.Context, id int) (*model.Event, error)
	Update(ctx context.Context, id int, params model.UpdateEventParams) (*model.Event, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
	ListLowStock(ctx context.Context) ([]*model.Event, error)
	ListSoldOut(ctx context.Context) ([]*model.Event, error)
	ListUpcoming(ctx context.Context, limit int) ([]*model.Event, error)

	// Transaction methods
	DecrementAvailable(ctx context.Context, tx pgx.Tx, id int, quantity int) error
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

const eventColumns = `e.id, e.title, e.description, e.category_id, e.event_time,
		e.ticket_price, e.available_tickets, e.created_at, c.name`

func scanEvent(row pgx.Row) (*model.Event, error) {
	var event model.Event
	var categoryName string
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.CategoryID,
		&event.EventTime,
		&event.TicketPrice,
		&event.AvailableTickets,
		&event.CreatedAt,
		&categoryName,
	)
	if err != nil {
		return nil, err
	}
	event.Category = &model.Category{ID: event.CategoryID, Name: categoryName}
	return &event, nil
}

func (r *EventRepositoryImpl) collectEvents(ctx context.Context, query string, args ...interface{}) ([]*model.Event, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := `
		INSERT INTO events (title, description, category_id, event_time, ticket_price, available_tickets)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		event.Title, event.Description, event.CategoryID,
		event.EventTime, event.TicketPrice, event.AvailableTickets,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return nil, err
	}

	return event, nil
}

// Search composes the catalog filters into a single query. Every filter is
// optional; an empty params value lists all events ordered by title.
func (r *EventRepositoryImpl) Search(ctx context.Context, params model.SearchEventsParams) ([]*model.Event, error) {
	wheres := []string{}
	args := []interface{}{}
	argPos := 1

	if params.Title != "" {
		wheres = append(wheres, fmt.Sprintf("e.title ILIKE $%d", argPos))
		args = append(args, "%"+params.Title+"%")
		argPos++
	}

	if params.CategoryID != nil {
		wheres = append(wheres, fmt.Sprintf("e.category_id = $%d", argPos))
		args = append(args, *params.CategoryID)
		argPos++
	}

	if params.DateRange != "" {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		switch params.DateRange {
		case model.DateRangeToday:
			wheres = append(wheres, fmt.Sprintf("e.event_time >= $%d AND e.event_time < $%d", argPos, argPos+1))
			args = append(args, today, today.AddDate(0, 0, 1))
			argPos += 2
		case model.DateRangeWeek:
			wheres = append(wheres, fmt.Sprintf("e.event_time >= $%d AND e.event_time < $%d", argPos, argPos+1))
			args = append(args, today, today.AddDate(0, 0, 7))
			argPos += 2
		case model.DateRangeMonth:
			wheres = append(wheres, fmt.Sprintf("e.event_time >= $%d AND e.event_time < $%d", argPos, argPos+1))
			args = append(args, today, today.AddDate(0, 1, 0))
			argPos += 2
		case model.DateRangeUpcoming:
			wheres = append(wheres, fmt.Sprintf("e.event_time >= $%d", argPos))
			args = append(args, today)
			argPos++
		default:
			return nil, apperrors.ErrInvalidInput
		}
	}

	if params.Availability != "" {
		switch params.Availability {
		case model.AvailabilityAvailable:
			wheres = append(wheres, "e.available_tickets > 0")
		case model.AvailabilityLow:
			wheres = append(wheres, fmt.Sprintf("e.available_tickets > 0 AND e.available_tickets < %d", model.LowStockThreshold))
		case model.AvailabilitySoldOut:
			wheres = append(wheres, "e.available_tickets = 0")
		default:
			return nil, apperrors.ErrInvalidInput
		}
	}

	var orderBy string
	switch params.SortBy {
	case model.SortByDate:
		orderBy = "e.event_time"
	case model.SortByPriceAsc:
		orderBy = "e.ticket_price"
	case model.SortByPriceDesc:
		orderBy = "e.ticket_price DESC"
	case model.SortByTitle, "":
		orderBy = "e.title"
	default:
		return nil, apperrors.ErrInvalidInput
	}

	where := ""
	if len(wheres) > 0 {
		where = "WHERE " + strings.Join(wheres, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM events e
		JOIN categories c ON c.id = e.category_id
		%s
		ORDER BY %s
	`, eventColumns, where, orderBy)

	return r.collectEvents(ctx, query, args...)
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events e
		JOIN categories c ON c.id = e.category_id
		WHERE e.id = $1
	`, eventColumns)

	event, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

// FindByIDWithSales also reports the total tickets sold across all purchase
// items referencing the event.
func (r *EventRepositoryImpl) FindByIDWithSales(ctx context.Context, id int) (*model.Event, error) {
	event, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM purchase_items
		WHERE event_id = $1
	`
	if err := r.pool.QueryRow(ctx, query, id).Scan(&event.TicketsSold); err != nil {
		return nil, err
	}

	return event, nil
}

func (r *EventRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateEventParams) (*model.Event, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	appendSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if params.Title != nil {
		appendSet("title", *params.Title)
	}
	if params.Description != nil {
		appendSet("description", *params.Description)
	}
	if params.CategoryID != nil {
		appendSet("category_id", *params.CategoryID)
	}
	if params.EventTime != nil {
		appendSet("event_time", *params.EventTime)
	}
	if params.TicketPrice != nil {
		appendSet("ticket_price", *params.TicketPrice)
	}
	if params.AvailableTickets != nil {
		appendSet("available_tickets", *params.AvailableTickets)
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE events
		SET %s
		WHERE id = $%d
		RETURNING id
	`, strings.Join(sets, ", "), argPos)

	var updatedID int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return r.FindByID(ctx, updatedID)
}

func (r *EventRepositoryImpl) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM events WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		// purchase_items restricts deletion; historic purchases keep their
		// event rows alive.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.ErrEventHasPurchases
		}
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

func (r *EventRepositoryImpl) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *EventRepositoryImpl) ListLowStock(ctx context.Context) ([]*model.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events e
		JOIN categories c ON c.id = e.category_id
		WHERE e.available_tickets > 0 AND e.available_tickets < $1
		ORDER BY e.available_tickets, e.title
	`, eventColumns)

	return r.collectEvents(ctx, query, model.LowStockThreshold)
}

func (r *EventRepositoryImpl) ListSoldOut(ctx context.Context) ([]*model.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events e
		JOIN categories c ON c.id = e.category_id
		WHERE e.available_tickets = 0
		ORDER BY e.title
	`, eventColumns)

	return r.collectEvents(ctx, query)
}

func (r *EventRepositoryImpl) ListUpcoming(ctx context.Context, limit int) ([]*model.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events e
		JOIN categories c ON c.id = e.category_id
		WHERE e.event_time > $1
		ORDER BY e.event_time
		LIMIT $2
	`, eventColumns)

	return r.collectEvents(ctx, query, time.Now().UTC(), limit)
}

// DecrementAvailable subtracts quantity from the event's remaining tickets
// only if enough remain, in the caller's transaction. A zero row count means
// the stock check lost against a concurrent purchase (or the event vanished)
// and surfaces as ErrInvalidQuantity.
func (r *EventRepositoryImpl) DecrementAvailable(ctx context.Context, tx pgx.Tx, id int, quantity int) error {
	query := `
		UPDATE events
		SET available_tickets = available_tickets - $1
		WHERE id = $2 AND available_tickets >= $1
	`

	result, err := tx.Exec(ctx, query, quantity, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrInvalidQuantity
	}

	return nil
}
