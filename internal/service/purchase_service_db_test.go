package service_test

import (
	"context"
	"sync"
	"testing"

	cacheMocks "go-event-ticketing/internal/cache/mocks"
	"go-event-ticketing/internal/model"
	"go-event-ticketing/internal/repository"
	"go-event-ticketing/internal/service"
	apperrors "go-event-ticketing/pkg/app_errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDBPurchaseService(t *testing.T) (service.PurchaseService, repository.PurchaseRepository, repository.EventRepository) {
	db := requireTestDB(t)
	setupTestWithTruncate(t)

	purchaseRepo := repository.NewPurchaseRepository(db)
	eventRepo := repository.NewEventRepository(db)

	overview := cacheMocks.NewOverviewCacheMock()
	overview.On("Invalidate", mock.Anything).Return(nil)

	return service.NewPurchaseService(db, purchaseRepo, eventRepo, overview), purchaseRepo, eventRepo
}

func TestPurchaseService_Purchase_Commit(t *testing.T) {
	ctx := context.Background()
	svc, purchaseRepo, _ := newDBPurchaseService(t)

	categoryID := createTestCategory(t, "Concert")
	eventID := createTestEvent(t, "Live Jazz Night", categoryID, 49.99, 3)

	req := model.PurchaseRequest{
		EventID:    eventID,
		GuestName:  "Ada Lovelace",
		GuestEmail: "ada@example.com",
		Quantity:   3,
	}
	confirmation, err := svc.Purchase(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, confirmation)
	assert.True(t, decimal.NewFromFloat(149.97).Equal(confirmation.TotalCost),
		"expected total 149.97, got %s", confirmation.TotalCost)
	require.Len(t, confirmation.Lines, 1)
	assert.True(t, decimal.NewFromFloat(49.99).Equal(confirmation.Lines[0].UnitPrice))
	assert.Equal(t, 3, confirmation.Lines[0].Quantity)

	// exactly one purchase, one item, stock drained
	assert.Equal(t, 1, countRows(t, "purchases"))
	assert.Equal(t, 1, countRows(t, "purchase_items"))
	assert.Equal(t, 0, eventAvailable(t, eventID))

	persisted, err := purchaseRepo.FindByID(ctx, confirmation.PurchaseID)
	require.NoError(t, err)
	assert.Equal(t, model.PurchaseStatusCompleted, persisted.Status)
	assert.Equal(t, confirmation.Reference, persisted.Reference)
	require.Len(t, persisted.Items, 1)
	assert.True(t, decimal.NewFromFloat(49.99).Equal(persisted.Items[0].UnitPrice))
}

func TestPurchaseService_Purchase_ExceedsAvailability(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newDBPurchaseService(t)

	categoryID := createTestCategory(t, "Concert")
	eventID := createTestEvent(t, "Small Club Gig", categoryID, 20.00, 2)

	req := model.PurchaseRequest{
		EventID:    eventID,
		GuestName:  "Ada Lovelace",
		GuestEmail: "ada@example.com",
		Quantity:   3,
	}
	_, err := svc.Purchase(ctx, req)

	require.Error(t, err)
	var quantityErr *apperrors.InvalidQuantityError
	require.ErrorAs(t, err, &quantityErr)
	assert.Equal(t, 2, quantityErr.Available)

	// nothing persisted, stock untouched
	assert.Equal(t, 0, countRows(t, "purchases"))
	assert.Equal(t, 0, countRows(t, "purchase_items"))
	assert.Equal(t, 2, eventAvailable(t, eventID))
}

func TestPurchaseService_Purchase_PriceEditDoesNotRewriteHistory(t *testing.T) {
	ctx := context.Background()
	svc, purchaseRepo, eventRepo := newDBPurchaseService(t)

	categoryID := createTestCategory(t, "Workshop")
	eventID := createTestEvent(t, "Web Design Workshop", categoryID, 79.99, 30)

	confirmation, err := svc.Purchase(ctx, model.PurchaseRequest{
		EventID:    eventID,
		GuestName:  "Grace Hopper",
		GuestEmail: "grace@example.com",
		Quantity:   2,
	})
	require.NoError(t, err)

	newPrice := decimal.NewFromFloat(120.00)
	_, err = eventRepo.Update(ctx, eventID, model.UpdateEventParams{TicketPrice: &newPrice})
	require.NoError(t, err)

	persisted, err := purchaseRepo.FindByID(ctx, confirmation.PurchaseID)
	require.NoError(t, err)
	require.Len(t, persisted.Items, 1)
	assert.True(t, decimal.NewFromFloat(79.99).Equal(persisted.Items[0].UnitPrice),
		"unit price snapshot must survive price edits, got %s", persisted.Items[0].UnitPrice)
	assert.True(t, decimal.NewFromFloat(159.98).Equal(persisted.TotalCost))
}

// Two checkouts race for the last tickets: stock 3, both want 2. Exactly one
// may win; both winning would drive availability negative.
func TestPurchaseService_Purchase_ConcurrentLastTickets(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newDBPurchaseService(t)

	categoryID := createTestCategory(t, "Concert")
	eventID := createTestEvent(t, "Farewell Tour", categoryID, 49.99, 3)

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Purchase(ctx, model.PurchaseRequest{
				EventID:    eventID,
				GuestName:  "Racing Guest",
				GuestEmail: "racer@example.com",
				Quantity:   2,
			})
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	successes, rejections := 0, 0
	for err := range results {
		if err == nil {
			successes++
		} else {
			require.ErrorIs(t, err, apperrors.ErrInvalidQuantity)
			rejections++
		}
	}

	assert.Equal(t, 1, successes, "exactly one of the racing purchases may commit")
	assert.Equal(t, 1, rejections)
	assert.Equal(t, 1, eventAvailable(t, eventID))
	assert.Equal(t, 1, countRows(t, "purchases"))
}

func TestPurchaseService_Purchase_NoOversellUnderLoad(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newDBPurchaseService(t)

	categoryID := createTestCategory(t, "Meetup")
	eventID := createTestEvent(t, "Gophers Meetup", categoryID, 5.00, 5)

	buyers := 20
	results := make(chan error, buyers)
	var wg sync.WaitGroup
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Purchase(ctx, model.PurchaseRequest{
				EventID:    eventID,
				GuestName:  "Crowd Member",
				GuestEmail: "crowd@example.com",
				Quantity:   1,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
		}
	}

	assert.Equal(t, 5, successes, "successful purchases must equal initial stock")
	assert.Equal(t, 0, eventAvailable(t, eventID))
	assert.Equal(t, 5, countRows(t, "purchases"))
	assert.Equal(t, 5, countRows(t, "purchase_items"))
}
