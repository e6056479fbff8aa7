package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-event-ticketing/internal/handler"
	"go-event-ticketing/internal/model"
	"go-event-ticketing/internal/service/mocks"
	apperrors "go-event-ticketing/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupPurchaseTestRouter(mockService *mocks.PurchaseServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	purchaseHandler := handler.NewPurchaseHandler(mockService)

	router.POST("/api/v1/purchases", purchaseHandler.Create)
	router.GET("/api/v1/purchases", purchaseHandler.List)
	router.GET("/api/v1/purchases/:id", purchaseHandler.GetByID)

	return router
}

func checkoutRequest() model.PurchaseRequest {
	return model.PurchaseRequest{
		EventID:    10,
		GuestName:  "Ada Lovelace",
		GuestEmail: "ada@example.com",
		Quantity:   2,
	}
}

func TestCreatePurchase(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewPurchaseServiceMock()
		router := setupPurchaseTestRouter(mockService)

		confirmation := &model.PurchaseConfirmation{
			PurchaseID: 1,
			Reference:  uuid.New(),
			TotalCost:  decimal.NewFromFloat(99.98),
			Lines: []model.PurchaseLine{
				{EventID: 10, EventTitle: "Live Jazz Night", Quantity: 2, UnitPrice: decimal.NewFromFloat(49.99), LineTotal: decimal.NewFromFloat(99.98)},
			},
		}
		mockService.On("Purchase", mock.Anything, mock.Anything).Return(confirmation, nil).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/purchases", checkoutRequest())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - InvalidQuantity carries availability", func(t *testing.T) {
		mockService := mocks.NewPurchaseServiceMock()
		router := setupPurchaseTestRouter(mockService)

		mockService.On("Purchase", mock.Anything, mock.Anything).
			Return(nil, &apperrors.InvalidQuantityError{Available: 2}).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/purchases", checkoutRequest())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, float64(2), body["available"])
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - ErrEventNotFound", func(t *testing.T) {
		mockService := mocks.NewPurchaseServiceMock()
		router := setupPurchaseTestRouter(mockService)

		mockService.On("Purchase", mock.Anything, mock.Anything).Return(nil, apperrors.ErrEventNotFound).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/purchases", checkoutRequest())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Failed - ErrInvalidGuestInfo", func(t *testing.T) {
		mockService := mocks.NewPurchaseServiceMock()
		router := setupPurchaseTestRouter(mockService)

		mockService.On("Purchase", mock.Anything, mock.Anything).Return(nil, apperrors.ErrInvalidGuestInfo).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/purchases", checkoutRequest())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Failed - ErrTransactionFailed", func(t *testing.T) {
		mockService := mocks.NewPurchaseServiceMock()
		router := setupPurchaseTestRouter(mockService)

		mockService.On("Purchase", mock.Anything, mock.Anything).Return(nil, apperrors.ErrTransactionFailed).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/purchases", checkoutRequest())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("Failed - BindingError", func(t *testing.T) {
		mockService := mocks.NewPurchaseServiceMock()
		router := setupPurchaseTestRouter(mockService)

		req := createJSONHTTPRequest("POST", "/api/v1/purchases", invalidJSON)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Purchase")
	})
}

func TestGetPurchase(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewPurchaseServiceMock()
		router := setupPurchaseTestRouter(mockService)

		mockService.On("GetByID", mock.Anything, 1).Return(&model.Purchase{ID: 1}, nil).Once()

		req := createJSONHTTPRequest("GET", "/api/v1/purchases/1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Failed - ErrPurchaseNotFound", func(t *testing.T) {
		mockService := mocks.NewPurchaseServiceMock()
		router := setupPurchaseTestRouter(mockService)

		mockService.On("GetByID", mock.Anything, 42).Return(nil, apperrors.ErrPurchaseNotFound).Once()

		req := createJSONHTTPRequest("GET", "/api/v1/purchases/42", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Failed - non-numeric id", func(t *testing.T) {
		mockService := mocks.NewPurchaseServiceMock()
		router := setupPurchaseTestRouter(mockService)

		req := createJSONHTTPRequest("GET", "/api/v1/purchases/abc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "GetByID")
	})
}

func TestListPurchases(t *testing.T) {
	t.Run("All", func(t *testing.T) {
		mockService := mocks.NewPurchaseServiceMock()
		router := setupPurchaseTestRouter(mockService)

		mockService.On("List", mock.Anything).Return([]*model.Purchase{{ID: 1}, {ID: 2}}, nil).Once()

		req := createJSONHTTPRequest("GET", "/api/v1/purchases", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("By guest email", func(t *testing.T) {
		mockService := mocks.NewPurchaseServiceMock()
		router := setupPurchaseTestRouter(mockService)

		mockService.On("ListByGuestEmail", mock.Anything, "ada@example.com").
			Return([]*model.Purchase{{ID: 1}}, nil).Once()

		req := createJSONHTTPRequest("GET", "/api/v1/purchases?guest_email=ada@example.com", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertNotCalled(t, "List")
	})
}
