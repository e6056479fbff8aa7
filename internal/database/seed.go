package database

import (
	"context"
	"time"

	"go-event-ticketing/internal/model"
	"go-event-ticketing/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func ptr(s string) *string { return &s }

// Seed inserts a sample catalog into an empty database. It is a no-op when
// any category or event already exists.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	log := logger.WithComponent("seed")

	var existing int
	err := pool.QueryRow(ctx,
		`SELECT (SELECT COUNT(*) FROM categories) + (SELECT COUNT(*) FROM events)`,
	).Scan(&existing)
	if err != nil {
		return err
	}
	if existing > 0 {
		log.Info("database already seeded, skipping")
		return nil
	}

	categories := []model.Category{
		{Name: "Webinar", Description: ptr("Online educational sessions and professional training")},
		{Name: "Concert", Description: ptr("Live music performances and entertainment events")},
		{Name: "Workshop", Description: ptr("Hands-on learning and skill development sessions")},
		{Name: "Conference", Description: ptr("Large-scale professional gatherings and networking")},
		{Name: "Meetup", Description: ptr("Casual networking and community-focused events")},
	}

	categoryIDs := make([]int, len(categories))
	for i, c := range categories {
		err := pool.QueryRow(ctx,
			`INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id`,
			c.Name, c.Description,
		).Scan(&categoryIDs[i])
		if err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	events := []model.Event{
		{
			Title:            "Go Web Services Fundamentals",
			Description:      ptr("Learn the basics of building web services in Go. Perfect for beginners starting their backend journey."),
			CategoryID:       categoryIDs[0],
			EventTime:        now.AddDate(0, 0, 7).Add(14 * time.Hour),
			TicketPrice:      decimal.NewFromFloat(29.99),
			AvailableTickets: 100,
		},
		{
			Title:            "Live Jazz Night",
			Description:      ptr("Enjoy an evening of smooth jazz with local musicians. A perfect night out for jazz enthusiasts."),
			CategoryID:       categoryIDs[1],
			EventTime:        now.AddDate(0, 0, 14).Add(19 * time.Hour),
			TicketPrice:      decimal.NewFromFloat(49.99),
			AvailableTickets: 3,
		},
		{
			Title:            "Web Design Workshop",
			Description:      ptr("Master modern web design techniques, UI/UX principles, and industry tools. Suitable for all levels."),
			CategoryID:       categoryIDs[2],
			EventTime:        now.AddDate(0, 0, 3).Add(10 * time.Hour),
			TicketPrice:      decimal.NewFromFloat(79.99),
			AvailableTickets: 30,
		},
		{
			Title:            "Tech Leaders Conference 2026",
			Description:      ptr("Connect with industry leaders and innovators. Network with the brightest minds in technology."),
			CategoryID:       categoryIDs[3],
			EventTime:        now.AddDate(0, 0, 30).Add(9 * time.Hour),
			TicketPrice:      decimal.NewFromFloat(199.99),
			AvailableTickets: 0,
		},
		{
			Title:            "Gophers Meetup",
			Description:      ptr("Network with Go developers in your area. Share knowledge, experiences, and build connections."),
			CategoryID:       categoryIDs[4],
			EventTime:        now.AddDate(0, 0, 10).Add(18 * time.Hour),
			TicketPrice:      decimal.NewFromFloat(5.00),
			AvailableTickets: 50,
		},
		{
			Title:            "Database Design Masterclass",
			Description:      ptr("Advanced techniques in database optimization, normalization, and performance tuning."),
			CategoryID:       categoryIDs[0],
			EventTime:        now.AddDate(0, 0, 21).Add(15 * time.Hour),
			TicketPrice:      decimal.NewFromFloat(89.99),
			AvailableTickets: 25,
		},
		{
			Title:            "Cloud Architecture Summit",
			Description:      ptr("Explore cloud computing architectures, best practices, and real-world implementations."),
			CategoryID:       categoryIDs[3],
			EventTime:        now.AddDate(0, 0, 45).Add(10 * time.Hour),
			TicketPrice:      decimal.NewFromFloat(149.99),
			AvailableTickets: 40,
		},
		{
			Title:            "Python for Data Science",
			Description:      ptr("Learn Python programming with a focus on data analysis, visualization, and machine learning basics."),
			CategoryID:       categoryIDs[2],
			EventTime:        now.AddDate(0, 0, 5).Add(16 * time.Hour),
			TicketPrice:      decimal.NewFromFloat(69.99),
			AvailableTickets: 2,
		},
	}

	for _, e := range events {
		_, err := pool.Exec(ctx,
			`INSERT INTO events (title, description, category_id, event_time, ticket_price, available_tickets)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			e.Title, e.Description, e.CategoryID, e.EventTime, e.TicketPrice, e.AvailableTickets,
		)
		if err != nil {
			return err
		}
	}

	log.Info("seeded sample catalog")
	return nil
}
