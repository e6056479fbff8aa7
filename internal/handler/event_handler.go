package handler

import (
	"errors"
	"net/http"
	"time"

	"go-event-ticketing/internal/model"
	"go-event-ticketing/internal/service"
	apperrors "go-event-ticketing/pkg/app_errors"
	"go-event-ticketing/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("events", h.Search)
		router.GET("events/overview", h.Overview)
		router.GET("events/:id", h.GetByID)
		router.POST("events", h.Create)
		router.PUT("events/:id", h.Update)
		router.DELETE("events/:id", h.Delete)
	}
}

type CreateEventRequest struct {
	Title            string          `json:"title" binding:"required"`
	Description      *string         `json:"description"`
	CategoryID       int             `json:"category_id" binding:"required"`
	EventTime        time.Time       `json:"event_time" binding:"required"`
	TicketPrice      decimal.Decimal `json:"ticket_price"`
	AvailableTickets int             `json:"available_tickets"`
}

type UpdateEventRequest struct {
	Title            *string          `json:"title"`
	Description      *string          `json:"description"`
	CategoryID       *int             `json:"category_id"`
	EventTime        *time.Time       `json:"event_time"`
	TicketPrice      *decimal.Decimal `json:"ticket_price"`
	AvailableTickets *int             `json:"available_tickets"`
}

// SearchEventsRequest carries the catalog filters as query parameters, e.g.
// GET /api/v1/events?category_id=2&date_range=week&availability=low&sort_by=price_asc
type SearchEventsRequest struct {
	Title        string `form:"title"`
	CategoryID   *int   `form:"category_id"`
	DateRange    string `form:"date_range"`
	Availability string `form:"availability"`
	SortBy       string `form:"sort_by"`
}

func (h *EventHandler) Search(c *gin.Context) {
	var req SearchEventsRequest
	if err := BindQuery(c, &req); err != nil {
		return
	}

	params := model.SearchEventsParams{
		Title:        req.Title,
		CategoryID:   req.CategoryID,
		DateRange:    model.DateRange(req.DateRange),
		Availability: model.AvailabilityBucket(req.Availability),
		SortBy:       model.SortKey(req.SortBy),
	}
	if req.DateRange != "" && !params.DateRange.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_range"})
		return
	}
	if req.Availability != "" && !params.Availability.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid availability"})
		return
	}
	if req.SortBy != "" && !params.SortBy.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort_by"})
		return
	}

	events, err := h.service.Search(c, params)
	if err != nil {
		h.handleError(c, err, "Search")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Overview(c *gin.Context) {
	overview, err := h.service.Overview(c)
	if err != nil {
		h.handleError(c, err, "Overview")
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *EventHandler) GetByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	event, err := h.service.GetByID(c, id)
	if err != nil {
		h.handleError(c, err, "GetByID")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"event":               event,
		"availability_status": event.AvailabilityStatus(),
	})
}

func (h *EventHandler) Create(c *gin.Context) {
	var req CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	event := &model.Event{
		Title:            req.Title,
		Description:      req.Description,
		CategoryID:       req.CategoryID,
		EventTime:        req.EventTime,
		TicketPrice:      req.TicketPrice,
		AvailableTickets: req.AvailableTickets,
	}
	created, err := h.service.Create(c, event)
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *EventHandler) Update(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req UpdateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	params := model.UpdateEventParams{
		Title:            req.Title,
		Description:      req.Description,
		CategoryID:       req.CategoryID,
		EventTime:        req.EventTime,
		TicketPrice:      req.TicketPrice,
		AvailableTickets: req.AvailableTickets,
	}
	updated, err := h.service.Update(c, id, params)
	if err != nil {
		h.handleError(c, err, "Update")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c, id); err != nil {
		h.handleError(c, err, "Delete")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EventHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, apperrors.ErrCategoryNotFound):
		log.Warn("Category not found")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
	case errors.Is(err, apperrors.ErrEventHasPurchases):
		log.Warn("Event has purchases")
		c.JSON(http.StatusConflict, gin.H{"error": "Event has recorded purchases"})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
