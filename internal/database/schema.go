package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the ticketing tables if they do not exist yet.
// purchase_items restricts deletion of referenced events and is swept away
// with its purchase; available_tickets can never go negative at the
// database level.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id          SERIAL PRIMARY KEY,
			name        VARCHAR(100) NOT NULL,
			description VARCHAR(500),
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id                SERIAL PRIMARY KEY,
			title             VARCHAR(200) NOT NULL,
			description       VARCHAR(1000),
			category_id       INT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
			event_time        TIMESTAMPTZ NOT NULL,
			ticket_price      NUMERIC(10,2) NOT NULL CHECK (ticket_price > 0 AND ticket_price <= 10000),
			available_tickets INT NOT NULL CHECK (available_tickets >= 0 AND available_tickets <= 100000),
			created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS purchases (
			id           SERIAL PRIMARY KEY,
			reference    UUID NOT NULL UNIQUE,
			guest_name   VARCHAR(150) NOT NULL,
			guest_email  VARCHAR(254) NOT NULL,
			guest_phone  VARCHAR(50),
			total_cost   NUMERIC(12,2) NOT NULL CHECK (total_cost > 0),
			status       VARCHAR(50) NOT NULL DEFAULT 'Completed',
			purchased_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS purchase_items (
			id          SERIAL PRIMARY KEY,
			purchase_id INT NOT NULL REFERENCES purchases(id) ON DELETE CASCADE,
			event_id    INT NOT NULL REFERENCES events(id) ON DELETE RESTRICT,
			quantity    INT NOT NULL CHECK (quantity >= 1 AND quantity <= 1000),
			unit_price  NUMERIC(10,2) NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_category_id ON events(category_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_event_time ON events(event_time)`,
		`CREATE INDEX IF NOT EXISTS idx_purchase_items_event_id ON purchase_items(event_id)`,
		`CREATE INDEX IF NOT EXISTS idx_purchases_guest_email ON purchases(guest_email)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}
