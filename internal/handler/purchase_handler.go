package handler

import (
	"errors"
	"net/http"

	"go-event-ticketing/internal/model"
	"go-event-ticketing/internal/service"
	apperrors "go-event-ticketing/pkg/app_errors"
	"go-event-ticketing/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PurchaseHandler struct {
	service service.PurchaseService
}

func NewPurchaseHandler(service service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: service}
}

func (h *PurchaseHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("purchases", h.Create)
		router.GET("purchases", h.List)
		router.GET("purchases/:id", h.GetByID)
	}
}

func (h *PurchaseHandler) Create(c *gin.Context) {
	var req model.PurchaseRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	confirmation, err := h.service.Purchase(c, req)
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}

	c.JSON(http.StatusCreated, confirmation)
}

func (h *PurchaseHandler) GetByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	purchase, err := h.service.GetByID(c, id)
	if err != nil {
		h.handleError(c, err, "GetByID")
		return
	}
	c.JSON(http.StatusOK, purchase)
}

// List returns the purchase history, newest first. With ?guest_email= it
// narrows to a single guest's purchases.
func (h *PurchaseHandler) List(c *gin.Context) {
	if email := c.Query("guest_email"); email != "" {
		purchases, err := h.service.ListByGuestEmail(c, email)
		if err != nil {
			h.handleError(c, err, "List")
			return
		}
		c.JSON(http.StatusOK, purchases)
		return
	}

	purchases, err := h.service.List(c)
	if err != nil {
		h.handleError(c, err, "List")
		return
	}
	c.JSON(http.StatusOK, purchases)
}

func (h *PurchaseHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))

	var quantityErr *apperrors.InvalidQuantityError
	switch {
	case errors.As(err, &quantityErr):
		log.Warn("Invalid ticket quantity")
		c.JSON(http.StatusConflict, gin.H{
			"error":     "Invalid ticket quantity",
			"available": quantityErr.Available,
		})
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, apperrors.ErrPurchaseNotFound):
		log.Warn("Purchase not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
	case errors.Is(err, apperrors.ErrInvalidGuestInfo):
		log.Warn("Invalid guest info")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Guest name and a valid email are required"})
	case errors.Is(err, apperrors.ErrTransactionFailed):
		log.Error("Purchase transaction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Purchase failed, no charge was recorded. Please retry."})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
