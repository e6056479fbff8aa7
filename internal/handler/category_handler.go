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

type CategoryHandler struct {
	service service.CategoryService
}

func NewCategoryHandler(service service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("categories", h.List)
		router.GET("categories/:id", h.GetByID)
		router.POST("categories", h.Create)
		router.PUT("categories/:id", h.Update)
		router.DELETE("categories/:id", h.Delete)
	}
}

type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.List(c)
	if err != nil {
		h.handleError(c, err, "List")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	category, err := h.service.GetByID(c, id)
	if err != nil {
		h.handleError(c, err, "GetByID")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	created, err := h.service.Create(c, category)
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req UpdateCategoryRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	if req.Name == nil && req.Description == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one of name or description is required"})
		return
	}
	params := model.UpdateCategoryParams{
		Name:        req.Name,
		Description: req.Description,
	}
	updated, err := h.service.Update(c, id, params)
	if err != nil {
		h.handleError(c, err, "Update")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
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

func (h *CategoryHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrCategoryNotFound):
		log.Warn("Category not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
	case errors.Is(err, apperrors.ErrCategoryInUse):
		log.Warn("Category has events")
		c.JSON(http.StatusConflict, gin.H{"error": "Category still has events"})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
