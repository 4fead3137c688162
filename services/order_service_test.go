package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/ivanfarhani22/management-ecommerce-sub000/events"
	"github.com/ivanfarhani22/management-ecommerce-sub000/mocks"
	"github.com/ivanfarhani22/management-ecommerce-sub000/models"
	"github.com/ivanfarhani22/management-ecommerce-sub000/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrderServiceForTest() (*OrderService, *mocks.MockOrderRepository, *mocks.MockCartRepository, *mocks.MockProductRepository, *mocks.MockPaymentRepository, *mocks.MockPublisher) {
	mockOrders := new(mocks.MockOrderRepository)
	mockCarts := new(mocks.MockCartRepository)
	mockProducts := new(mocks.MockProductRepository)
	mockPayments := new(mocks.MockPaymentRepository)
	mockPub := new(mocks.MockPublisher)
	svc := NewOrderService(mockOrders, mockCarts, mockProducts, mockPayments, mockPub)
	return svc, mockOrders, mockCarts, mockProducts, mockPayments, mockPub
}

var testAddress = models.Address{
	Recipient:  "Budi",
	Phone:      "0811",
	Street:     "Jl. Melati 1",
	City:       "Bandung",
	Province:   "Jawa Barat",
	PostalCode: "40111",
}

func TestOrderService_CheckoutComputesTotalsServerSide(t *testing.T) {
	svc, mockOrders, mockCarts, mockProducts, _, mockPub := newOrderServiceForTest()

	cart := &models.Cart{
		CartID: 1,
		UserID: "user-1",
		Items: []models.CartItem{
			// Stale snapshot price; the live product row says 100000.
			{ProductID: 7, ProductPrice: 1, Quantity: 2},
		},
	}
	mockCarts.On("GetByUser", mock.Anything, "user-1").Return(cart, nil)
	mockProducts.On("FindByID", mock.Anything, uint(7)).
		Return(&models.Product{ID: 7, Name: "Watch", Price: 100000, Stock: 5}, nil)

	var created *models.Order
	mockOrders.On("CreateWithPayment", mock.Anything, mock.AnythingOfType("*models.Order")).
		Return(nil).Run(func(args mock.Arguments) {
		created = args.Get(1).(*models.Order)
		created.ID = 42
	})
	mockPub.On("Publish", mock.Anything, events.TopicOrderCreated, mock.Anything).Return(nil)

	order, err := svc.Checkout(context.Background(), "user-1", testAddress, models.DeliveryExpress, models.PaymentMethodMidtrans)
	require.NoError(t, err)
	require.NotNil(t, order)

	// 2 x 100000 + express 15000
	assert.Equal(t, float64(215000), order.TotalAmount)
	assert.Equal(t, float64(15000), order.DeliveryCost)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, order.TotalAmount, order.Payment.Amount)
	assert.Equal(t, models.PaymentStatusPending, order.Payment.Status)
	assert.Equal(t, models.PaymentMethodMidtrans, order.Payment.Method)

	require.Len(t, order.Items, 1)
	assert.Equal(t, float64(100000), order.Items[0].ProductPrice)
	assert.Regexp(t, regexp.MustCompile(`^ORD-\d{8}-[0-9a-f]{8}$`), order.OrderNumber)

	mockOrders.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}

func TestOrderService_CheckoutEmptyCart(t *testing.T) {
	svc, mockOrders, mockCarts, _, _, _ := newOrderServiceForTest()

	mockCarts.On("GetByUser", mock.Anything, "user-1").
		Return(&models.Cart{CartID: 1, UserID: "user-1"}, nil)

	_, err := svc.Checkout(context.Background(), "user-1", testAddress, models.DeliveryRegular, models.PaymentMethodCOD)
	assert.ErrorIs(t, err, ErrEmptyCart)
	mockOrders.AssertNotCalled(t, "CreateWithPayment", mock.Anything, mock.Anything)
}

func TestOrderService_CheckoutVanishedProductWritesNothing(t *testing.T) {
	svc, mockOrders, mockCarts, mockProducts, _, mockPub := newOrderServiceForTest()

	cart := &models.Cart{
		CartID: 1,
		UserID: "user-1",
		Items: []models.CartItem{
			{ProductID: 7, Quantity: 1},
			{ProductID: 8, Quantity: 1},
		},
	}
	mockCarts.On("GetByUser", mock.Anything, "user-1").Return(cart, nil)
	mockProducts.On("FindByID", mock.Anything, uint(7)).
		Return(&models.Product{ID: 7, Name: "Watch", Price: 100000, Stock: 5}, nil)
	mockProducts.On("FindByID", mock.Anything, uint(8)).
		Return(nil, repository.ErrProductNotFound)

	_, err := svc.Checkout(context.Background(), "user-1", testAddress, models.DeliveryRegular, models.PaymentMethodCOD)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)

	mockOrders.AssertNotCalled(t, "CreateWithPayment", mock.Anything, mock.Anything)
	mockPub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_CheckoutInvalidDelivery(t *testing.T) {
	svc, _, mockCarts, _, _, _ := newOrderServiceForTest()

	cart := &models.Cart{
		CartID: 1,
		UserID: "user-1",
		Items:  []models.CartItem{{ProductID: 7, Quantity: 1}},
	}
	mockCarts.On("GetByUser", mock.Anything, "user-1").Return(cart, nil)

	_, err := svc.Checkout(context.Background(), "user-1", testAddress, models.DeliveryMethod("drone"), models.PaymentMethodCOD)
	assert.ErrorIs(t, err, ErrInvalidDelivery)
}

func TestOrderService_GetEnforcesOwnership(t *testing.T) {
	svc, mockOrders, _, _, _, _ := newOrderServiceForTest()

	mockOrders.On("FindByID", mock.Anything, uint(5)).
		Return(&models.Order{ID: 5, UserID: "user-B"}, nil)

	_, err := svc.Get(context.Background(), "user-A", 5)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestOrderService_Cancel(t *testing.T) {
	tests := []struct {
		name          string
		order         *models.Order
		expectedError error
	}{
		{
			name: "pending order with pending payment cancels",
			order: &models.Order{
				ID: 5, UserID: "user-A", Status: models.OrderStatusPending,
				Payment: models.Payment{ID: 9, OrderID: 5, Status: models.PaymentStatusPending},
			},
		},
		{
			name: "pending order with failed payment cancels",
			order: &models.Order{
				ID: 5, UserID: "user-A", Status: models.OrderStatusPending,
				Payment: models.Payment{ID: 9, OrderID: 5, Status: models.PaymentStatusFailed},
			},
		},
		{
			name: "paid order is not cancellable",
			order: &models.Order{
				ID: 5, UserID: "user-A", Status: models.OrderStatusPaid,
				Payment: models.Payment{ID: 9, OrderID: 5, Status: models.PaymentStatusSuccess},
			},
			expectedError: ErrNotCancellable,
		},
		{
			name: "shipped order is not cancellable",
			order: &models.Order{
				ID: 5, UserID: "user-A", Status: models.OrderStatusShipped,
				Payment: models.Payment{ID: 9, OrderID: 5, Status: models.PaymentStatusSuccess},
			},
			expectedError: ErrNotCancellable,
		},
		{
			name: "foreign order is forbidden",
			order: &models.Order{
				ID: 5, UserID: "user-B", Status: models.OrderStatusPending,
				Payment: models.Payment{ID: 9, OrderID: 5, Status: models.PaymentStatusPending},
			},
			expectedError: ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockOrders, _, _, mockPayments, _ := newOrderServiceForTest()
			mockOrders.On("FindByID", mock.Anything, uint(5)).Return(tt.order, nil)

			if tt.expectedError == nil {
				mockOrders.On("UpdateStatus", mock.Anything, uint(5), models.OrderStatusCancelled).Return(nil)
				mockPayments.On("UpdateStatus", mock.Anything, uint(9), models.PaymentStatusCancelled).Return(nil)
			}

			order, err := svc.Cancel(context.Background(), "user-A", 5)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				// No mutation on a rejected cancel.
				mockOrders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
				mockPayments.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, models.OrderStatusCancelled, order.Status)
				assert.Equal(t, models.PaymentStatusCancelled, order.Payment.Status)
				mockOrders.AssertExpectations(t)
				mockPayments.AssertExpectations(t)
			}
		})
	}
}
