package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MaxEventTitleLen       = 200
	MaxEventDescriptionLen = 1000
	MaxTicketPrice         = 10000
	MaxAvailableTickets    = 100000

	// LowStockThreshold marks events with fewer remaining tickets as low stock.
	LowStockThreshold = 5
)

type Event struct {
	ID               int             `json:"id" db:"id"`
	Title            string          `json:"title" db:"title"`
	Description      *string         `json:"description,omitempty" db:"description"`
	CategoryID       int             `json:"category_id" db:"category_id"`
	EventTime        time.Time       `json:"event_time" db:"event_time"`
	TicketPrice      decimal.Decimal `json:"ticket_price" db:"ticket_price"`
	AvailableTickets int             `json:"available_tickets" db:"available_tickets"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`

	Category    *Category `json:"category,omitempty" db:"-"`
	TicketsSold int       `json:"tickets_sold" db:"-"`
}

func (e *Event) IsLowStock() bool {
	return e.AvailableTickets > 0 && e.AvailableTickets < LowStockThreshold
}

func (e *Event) IsSoldOut() bool {
	return e.AvailableTickets == 0
}

func (e *Event) AvailabilityStatus() string {
	switch {
	case e.IsSoldOut():
		return "Sold Out"
	case e.IsLowStock():
		return "Low Stock"
	default:
		return "Available"
	}
}

type UpdateEventParams struct {
	Title            *string
	Description      *string
	CategoryID       *int
	EventTime        *time.Time
	TicketPrice      *decimal.Decimal
	AvailableTickets *int
}

// DateRange buckets event search by event time relative to today.
type DateRange string

const (
	DateRangeToday    DateRange = "today"
	DateRangeWeek     DateRange = "week"
	DateRangeMonth    DateRange = "month"
	DateRangeUpcoming DateRange = "upcoming"
)

func (d DateRange) IsValid() bool {
	switch d {
	case DateRangeToday, DateRangeWeek, DateRangeMonth, DateRangeUpcoming:
		return true
	}
	return false
}

// AvailabilityBucket filters events by remaining ticket stock.
type AvailabilityBucket string

const (
	AvailabilityAvailable AvailabilityBucket = "available"
	AvailabilityLow       AvailabilityBucket = "low"
	AvailabilitySoldOut   AvailabilityBucket = "soldout"
)

func (a AvailabilityBucket) IsValid() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityLow, AvailabilitySoldOut:
		return true
	}
	return false
}

// SortKey orders event search results. Title is the default.
type SortKey string

const (
	SortByDate      SortKey = "date"
	SortByPriceAsc  SortKey = "price_asc"
	SortByPriceDesc SortKey = "price_desc"
	SortByTitle     SortKey = "title"
)

func (s SortKey) IsValid() bool {
	switch s {
	case SortByDate, SortByPriceAsc, SortByPriceDesc, SortByTitle:
		return true
	}
	return false
}

type SearchEventsParams struct {
	CategoryID   *int
	Title        string
	DateRange    DateRange
	Availability AvailabilityBucket
	SortBy       SortKey
}

// CatalogOverview aggregates the stats shown on the storefront landing and
// admin overview pages.
type CatalogOverview struct {
	TotalEvents     int      `json:"total_events"`
	TotalCategories int      `json:"total_categories"`
	LowStockEvents  []*Event `json:"low_stock_events"`
	SoldOutEvents   []*Event `json:"sold_out_events"`
	UpcomingEvents  []*Event `json:"upcoming_events"`
}
