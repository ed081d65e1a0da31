package pos

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidjey-y/hellweekcoffee/internal/logger"
	"github.com/sidjey-y/hellweekcoffee/internal/models"
)

type fakeCatalog struct {
	items          map[string]*models.Item
	customizations map[int64]*models.Customization
}

func (f *fakeCatalog) GetItemByCode(_ context.Context, code string) (*models.Item, error) {
	item, ok := f.items[code]
	if !ok {
		return nil, models.NotFoundError{Entity: "item", Key: code}
	}
	return item, nil
}

func (f *fakeCatalog) GetCustomization(_ context.Context, id int64) (*models.Customization, error) {
	c, ok := f.customizations[id]
	if !ok {
		return nil, models.NotFoundError{Entity: "customization", Key: fmt.Sprintf("%d", id)}
	}
	return c, nil
}

type fakeCustomers struct{}

func (fakeCustomers) Resolve(_ context.Context, membershipID, guestFirstName string) (*models.Customer, error) {
	if membershipID != "" {
		return &models.Customer{ID: 1, MembershipID: &membershipID, FirstName: "Maria", Member: true, Active: true}, nil
	}
	return models.NewGuest(guestFirstName), nil
}

type fakeOrderStore struct {
	saved    []*models.Order
	byNumber map[string]*models.Order
	sequence int
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{byNumber: make(map[string]*models.Order), sequence: 1}
}

func (f *fakeOrderStore) NextOrderSequence(_ context.Context, _ time.Time) (int, error) {
	return f.sequence, nil
}

func (f *fakeOrderStore) SaveOrder(_ context.Context, order *models.Order) error {
	f.saved = append(f.saved, order)
	f.byNumber[order.Number] = order
	f.sequence++
	return nil
}

func (f *fakeOrderStore) GetOrderByNumber(_ context.Context, number string) (*models.Order, error) {
	order, ok := f.byNumber[number]
	if !ok {
		return nil, models.NotFoundError{Entity: "order", Key: number}
	}
	return order, nil
}

func (f *fakeOrderStore) UpdateOrderStatus(_ context.Context, _ *models.Order) error {
	return nil
}

func (f *fakeOrderStore) ListOrdersByStatus(_ context.Context, status models.OrderStatus) ([]*models.Order, error) {
	var orders []*models.Order
	for _, order := range f.saved {
		if order.Status == status {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (f *fakeOrderStore) Ping(_ context.Context) error {
	return nil
}

type fakePublisher struct {
	receipts      []*models.ReceiptMessage
	statusUpdates []*models.StatusUpdateMessage
	fail          bool
}

func (f *fakePublisher) PublishReceipt(_ context.Context, msg *models.ReceiptMessage) error {
	if f.fail {
		return errors.New("broker unavailable")
	}
	f.receipts = append(f.receipts, msg)
	return nil
}

func (f *fakePublisher) PublishStatusUpdate(_ context.Context, msg *models.StatusUpdateMessage) error {
	if f.fail {
		return errors.New("broker unavailable")
	}
	f.statusUpdates = append(f.statusUpdates, msg)
	return nil
}

func sizePtr(s models.Size) *models.Size {
	return &s
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{
		items: map[string]*models.Item{
			"LATTE": {
				Code:      "LATTE",
				Name:      "Cafe Latte",
				Type:      models.TypeDrink,
				BasePrice: 120,
				SizePrices: map[models.Size]models.Money{
					models.SizeMedium: 120,
					models.SizeLarge:  160,
				},
				CustomizationIDs: []int64{1},
				Active:           true,
			},
			"PLAIN": {
				Code:      "PLAIN",
				Name:      "Plain Brew",
				Type:      models.TypeDrink,
				BasePrice: 120,
				Active:    true,
			},
			"MUFFIN": {
				Code:      "MUFFIN",
				Name:      "Blueberry Muffin",
				Type:      models.TypeFood,
				BasePrice: 110,
				Active:    true,
			},
			"RETIRED": {
				Code:      "RETIRED",
				Name:      "Seasonal Special",
				Type:      models.TypeDrink,
				BasePrice: 150,
				Active:    false,
			},
		},
		customizations: map[int64]*models.Customization{
			1: {
				ID:             1,
				Name:           "MILK",
				ApplicableType: models.TypeDrink,
				Options: []models.Option{
					{ID: 10, Name: "Oat Milk", Price: 40},
					{ID: 11, Name: "Soy Milk", Price: 20},
				},
			},
		},
	}
}

func testService(store *fakeOrderStore, publisher *fakePublisher) *Service {
	return NewService(store, testCatalog(), fakeCustomers{}, publisher, logger.New("pos-test"), "pos-terminal")
}

func TestBuildLine_SizedPricing(t *testing.T) {
	builder := NewLineBuilder(NewResolver(testCatalog()))

	line, err := builder.BuildLine(context.Background(), LineRequest{
		ItemCode: "LATTE",
		Quantity: 2,
		Size:     "large",
	})
	require.NoError(t, err)

	assert.Equal(t, models.Money(160), line.UnitPrice)
	assert.Equal(t, models.Money(320), line.Subtotal())
}

func TestBuildLine_OptionSurcharge(t *testing.T) {
	builder := NewLineBuilder(NewResolver(testCatalog()))

	line, err := builder.BuildLine(context.Background(), LineRequest{
		ItemCode: "LATTE",
		Quantity: 1,
		Customizations: []CustomizationSelection{
			{CustomizationID: 1, OptionIDs: []int64{10}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.Money(160), line.UnitPrice)
	assert.Equal(t, models.Money(160), line.Subtotal())
	require.Len(t, line.Customizations, 1)
	assert.Equal(t, "Oat Milk", line.Customizations[0].Options[0].Name)
}

func TestBuildLine_SizeFallbackToBase(t *testing.T) {
	builder := NewLineBuilder(NewResolver(testCatalog()))

	line, err := builder.BuildLine(context.Background(), LineRequest{
		ItemCode: "PLAIN",
		Quantity: 1,
		Size:     "large",
	})
	require.NoError(t, err)

	assert.Equal(t, models.Money(120), line.UnitPrice)
}

func TestBuildLine_Failures(t *testing.T) {
	builder := NewLineBuilder(NewResolver(testCatalog()))
	ctx := context.Background()

	tests := []struct {
		name     string
		req      LineRequest
		check    func(error) bool
		checkMsg string
	}{
		{"zero quantity", LineRequest{ItemCode: "LATTE", Quantity: 0}, models.IsValidation, "validation"},
		{"negative quantity", LineRequest{ItemCode: "LATTE", Quantity: -1}, models.IsValidation, "validation"},
		{"missing item code", LineRequest{Quantity: 1}, models.IsValidation, "validation"},
		{"unknown size", LineRequest{ItemCode: "LATTE", Quantity: 1, Size: "venti"}, models.IsValidation, "validation"},
		{"unknown item", LineRequest{ItemCode: "NOPE", Quantity: 1}, models.IsNotFound, "not found"},
		{"inactive item", LineRequest{ItemCode: "RETIRED", Quantity: 1}, models.IsNotFound, "not found"},
		{"unknown customization", LineRequest{ItemCode: "LATTE", Quantity: 1, Customizations: []CustomizationSelection{{CustomizationID: 9, OptionIDs: []int64{10}}}}, models.IsNotFound, "not found"},
		{"unknown option", LineRequest{ItemCode: "LATTE", Quantity: 1, Customizations: []CustomizationSelection{{CustomizationID: 1, OptionIDs: []int64{99}}}}, models.IsNotFound, "not found"},
		{"empty option selection", LineRequest{ItemCode: "LATTE", Quantity: 1, Customizations: []CustomizationSelection{{CustomizationID: 1}}}, models.IsValidation, "validation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := builder.BuildLine(ctx, tt.req)
			assert.True(t, tt.check(err), "expected %s error, got %v", tt.checkMsg, err)
		})
	}
}

func TestCreateOrder_MergesDuplicateLines(t *testing.T) {
	store := newFakeOrderStore()
	service := testService(store, &fakePublisher{})

	resp, err := service.CreateOrder(context.Background(), &TransactionRequest{
		GuestFirstName: "Alex",
		PaymentMethod:  "cash",
		Lines: []LineRequest{
			{ItemCode: "LATTE", Quantity: 1, Size: "medium"},
			{ItemCode: "LATTE", Quantity: 2, Size: "medium"},
		},
	}, "req-1")
	require.NoError(t, err)

	require.Len(t, resp.Lines, 1)
	assert.Equal(t, 3, resp.Lines[0].Quantity)
	assert.Equal(t, models.Money(360), resp.Total)
}

func TestCreateOrder_AtomicBuild(t *testing.T) {
	store := newFakeOrderStore()
	service := testService(store, &fakePublisher{})

	_, err := service.CreateOrder(context.Background(), &TransactionRequest{
		GuestFirstName: "Alex",
		PaymentMethod:  "cash",
		Lines: []LineRequest{
			{ItemCode: "LATTE", Quantity: 1},
			{ItemCode: "NOPE", Quantity: 1},
			{ItemCode: "MUFFIN", Quantity: 1},
		},
	}, "req-1")

	assert.True(t, models.IsNotFound(err))
	assert.Empty(t, store.saved)
}

func TestCreateOrder_SettleNow(t *testing.T) {
	store := newFakeOrderStore()
	publisher := &fakePublisher{}
	service := testService(store, publisher)

	resp, err := service.CreateOrder(context.Background(), &TransactionRequest{
		GuestFirstName: "Alex",
		PaymentMethod:  "gcash",
		SettleNow:      true,
		Lines:          []LineRequest{{ItemCode: "MUFFIN", Quantity: 2}},
	}, "req-1")
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, resp.Status)
	assert.Equal(t, models.Money(220), resp.Total)
	assert.Empty(t, resp.Warning)
	require.Len(t, publisher.receipts, 1)
	assert.Equal(t, resp.OrderNumber, publisher.receipts[0].OrderNumber)
}

func TestCreateOrder_PublishFailureIsWarning(t *testing.T) {
	store := newFakeOrderStore()
	service := testService(store, &fakePublisher{fail: true})

	resp, err := service.CreateOrder(context.Background(), &TransactionRequest{
		GuestFirstName: "Alex",
		PaymentMethod:  "cash",
		Lines:          []LineRequest{{ItemCode: "MUFFIN", Quantity: 1}},
	}, "req-1")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Warning)
	assert.Len(t, store.saved, 1)
}

func TestCreateOrder_RequestValidation(t *testing.T) {
	service := testService(newFakeOrderStore(), &fakePublisher{})
	ctx := context.Background()

	_, err := service.CreateOrder(ctx, &TransactionRequest{
		GuestFirstName: "Alex",
		PaymentMethod:  "barter",
		Lines:          []LineRequest{{ItemCode: "MUFFIN", Quantity: 1}},
	}, "req-1")
	assert.True(t, models.IsValidation(err))

	_, err = service.CreateOrder(ctx, &TransactionRequest{
		GuestFirstName: "Alex",
		PaymentMethod:  "cash",
	}, "req-1")
	assert.True(t, models.IsValidation(err))
}

func TestCompleteAndCancelOrder(t *testing.T) {
	store := newFakeOrderStore()
	publisher := &fakePublisher{}
	service := testService(store, publisher)
	ctx := context.Background()

	resp, err := service.CreateOrder(ctx, &TransactionRequest{
		GuestFirstName: "Alex",
		PaymentMethod:  "card",
		Lines:          []LineRequest{{ItemCode: "LATTE", Quantity: 1, Size: "large"}},
	}, "req-1")
	require.NoError(t, err)

	order, err := service.CompleteOrder(ctx, resp.OrderNumber, "req-2")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, order.Status)
	require.Len(t, publisher.statusUpdates, 1)
	assert.Equal(t, models.StatusPending, publisher.statusUpdates[0].OldStatus)
	assert.Equal(t, models.StatusCompleted, publisher.statusUpdates[0].NewStatus)

	_, err = service.CancelOrder(ctx, resp.OrderNumber, "req-3")
	assert.True(t, models.IsInvalidState(err))
	assert.Equal(t, models.StatusCompleted, order.Status)
}

func TestCancelOrder_UnknownNumber(t *testing.T) {
	service := testService(newFakeOrderStore(), &fakePublisher{})

	_, err := service.CancelOrder(context.Background(), "POS_20260101_001", "req-1")
	assert.True(t, models.IsNotFound(err))
}
