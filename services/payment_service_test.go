package services

import (
	"context"
	"testing"

	"github.com/ivanfarhani22/management-ecommerce-sub000/events"
	"github.com/ivanfarhani22/management-ecommerce-sub000/gateway"
	"github.com/ivanfarhani22/management-ecommerce-sub000/mocks"
	"github.com/ivanfarhani22/management-ecommerce-sub000/models"
	"github.com/ivanfarhani22/management-ecommerce-sub000/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPaymentService_TransitionTable(t *testing.T) {
	tests := []struct {
		name              string
		transactionStatus string
		fraudStatus       string
		wantPayment       models.PaymentStatus
		wantOrder         models.OrderStatus
		wantOrderChange   bool
	}{
		{"capture accepted", "capture", "accept", models.PaymentStatusSuccess, models.OrderStatusPaid, true},
		{"capture challenged", "capture", "challenge", models.PaymentStatusChallenge, "", false},
		{"settlement", "settlement", "", models.PaymentStatusSuccess, models.OrderStatusPaid, true},
		{"still pending", "pending", "", models.PaymentStatusPending, "", false},
		{"denied", "deny", "", models.PaymentStatusFailed, models.OrderStatusCancelled, true},
		{"expired", "expire", "", models.PaymentStatusExpired, models.OrderStatusCancelled, true},
		{"cancelled", "cancel", "", models.PaymentStatusCancelled, models.OrderStatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPayments := new(mocks.MockPaymentRepository)
			mockOrders := new(mocks.MockOrderRepository)
			mockPub := new(mocks.MockPublisher)

			payment := &models.Payment{ID: 9, OrderID: 5, Status: models.PaymentStatusPending, TransactionID: "mid-123"}
			mockPayments.On("FindByOrderNumber", mock.Anything, "ORD-20250101-a1b2c3d4").Return(payment, nil)
			mockPayments.On("UpdateStatus", mock.Anything, uint(9), tt.wantPayment).Return(nil)
			if tt.wantOrderChange {
				mockOrders.On("UpdateStatus", mock.Anything, uint(5), tt.wantOrder).Return(nil)
			}
			mockPub.On("Publish", mock.Anything, events.TopicPaymentUpdated, mock.Anything).Return(nil)

			svc := NewPaymentService(mockPayments, mockOrders, mockPub)
			got, err := svc.ApplyNotification(context.Background(), gateway.Notification{
				OrderID:           "ORD-20250101-a1b2c3d4",
				TransactionStatus: tt.transactionStatus,
				FraudStatus:       tt.fraudStatus,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPayment, got.Status)

			if !tt.wantOrderChange {
				mockOrders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
			}
			mockPayments.AssertExpectations(t)
			mockOrders.AssertExpectations(t)
		})
	}
}

// Replaying the same notification twice must land on the same final
// status both times; the mapping is a pure function of the payload.
func TestPaymentService_ReplayIsIdempotent(t *testing.T) {
	mockPayments := new(mocks.MockPaymentRepository)
	mockOrders := new(mocks.MockOrderRepository)
	mockPub := new(mocks.MockPublisher)

	mockPayments.On("FindByOrderNumber", mock.Anything, "ORD-20250101-a1b2c3d4").
		Return(&models.Payment{ID: 9, OrderID: 5, Status: models.PaymentStatusPending, TransactionID: "mid-123"}, nil).Once()
	// Second delivery sees the already-updated row.
	mockPayments.On("FindByOrderNumber", mock.Anything, "ORD-20250101-a1b2c3d4").
		Return(&models.Payment{ID: 9, OrderID: 5, Status: models.PaymentStatusSuccess, TransactionID: "mid-123"}, nil).Once()
	mockPayments.On("UpdateStatus", mock.Anything, uint(9), models.PaymentStatusSuccess).Return(nil).Twice()
	mockOrders.On("UpdateStatus", mock.Anything, uint(5), models.OrderStatusPaid).Return(nil).Twice()
	mockPub.On("Publish", mock.Anything, events.TopicPaymentUpdated, mock.Anything).Return(nil)

	svc := NewPaymentService(mockPayments, mockOrders, mockPub)
	n := gateway.Notification{OrderID: "ORD-20250101-a1b2c3d4", TransactionStatus: "settlement"}

	first, err := svc.ApplyNotification(context.Background(), n)
	require.NoError(t, err)
	second, err := svc.ApplyNotification(context.Background(), n)
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, models.PaymentStatusSuccess, second.Status)
	mockPayments.AssertExpectations(t)
	mockOrders.AssertExpectations(t)
}

func TestPaymentService_UnknownOrderID(t *testing.T) {
	mockPayments := new(mocks.MockPaymentRepository)
	mockOrders := new(mocks.MockOrderRepository)
	mockPub := new(mocks.MockPublisher)

	mockPayments.On("FindByOrderNumber", mock.Anything, "ORD-20250101-ffffffff").
		Return(nil, repository.ErrPaymentNotFound)

	svc := NewPaymentService(mockPayments, mockOrders, mockPub)
	_, err := svc.ApplyNotification(context.Background(), gateway.Notification{
		OrderID:           "ORD-20250101-ffffffff",
		TransactionStatus: "settlement",
	})
	assert.ErrorIs(t, err, repository.ErrPaymentNotFound)
	mockPayments.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	mockPub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_UnknownStatusRejected(t *testing.T) {
	mockPayments := new(mocks.MockPaymentRepository)
	mockOrders := new(mocks.MockOrderRepository)
	mockPub := new(mocks.MockPublisher)

	mockPayments.On("FindByOrderNumber", mock.Anything, "ORD-20250101-a1b2c3d4").
		Return(&models.Payment{ID: 9, OrderID: 5, TransactionID: "mid-123"}, nil)

	svc := NewPaymentService(mockPayments, mockOrders, mockPub)
	_, err := svc.ApplyNotification(context.Background(), gateway.Notification{
		OrderID:           "ORD-20250101-a1b2c3d4",
		TransactionStatus: "refund",
	})
	assert.ErrorIs(t, err, ErrUnknownNotification)
	mockPayments.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_RecordsProviderTransactionID(t *testing.T) {
	mockPayments := new(mocks.MockPaymentRepository)
	mockOrders := new(mocks.MockOrderRepository)
	mockPub := new(mocks.MockPublisher)

	mockPayments.On("FindByOrderNumber", mock.Anything, "ORD-20250101-a1b2c3d4").
		Return(&models.Payment{ID: 9, OrderID: 5, SnapToken: "tok-1"}, nil)
	mockPayments.On("UpdateStatus", mock.Anything, uint(9), models.PaymentStatusPending).Return(nil)
	mockPayments.On("SetGatewayRef", mock.Anything, uint(9), "tok-1", "mid-999").Return(nil)
	mockPub.On("Publish", mock.Anything, events.TopicPaymentUpdated, mock.Anything).Return(nil)

	svc := NewPaymentService(mockPayments, mockOrders, mockPub)
	got, err := svc.ApplyNotification(context.Background(), gateway.Notification{
		OrderID:           "ORD-20250101-a1b2c3d4",
		TransactionID:     "mid-999",
		TransactionStatus: "pending",
	})
	require.NoError(t, err)
	assert.Equal(t, "mid-999", got.TransactionID)
	mockPayments.AssertExpectations(t)
}

func TestPaymentService_CorrectsStaleTransactionID(t *testing.T) {
	mockPayments := new(mocks.MockPaymentRepository)
	mockOrders := new(mocks.MockOrderRepository)
	mockPub := new(mocks.MockPublisher)

	// A row that ended up with something other than the provider id must
	// be corrected once the notification reports the real one.
	mockPayments.On("FindByOrderNumber", mock.Anything, "ORD-20250101-a1b2c3d4").
		Return(&models.Payment{ID: 9, OrderID: 5, SnapToken: "tok-1", TransactionID: "ORD-20250101-a1b2c3d4"}, nil)
	mockPayments.On("UpdateStatus", mock.Anything, uint(9), models.PaymentStatusSuccess).Return(nil)
	mockPayments.On("SetGatewayRef", mock.Anything, uint(9), "tok-1", "mid-real-123").Return(nil)
	mockOrders.On("UpdateStatus", mock.Anything, uint(5), models.OrderStatusPaid).Return(nil)
	mockPub.On("Publish", mock.Anything, events.TopicPaymentUpdated, mock.Anything).Return(nil)

	svc := NewPaymentService(mockPayments, mockOrders, mockPub)
	got, err := svc.ApplyNotification(context.Background(), gateway.Notification{
		OrderID:           "ORD-20250101-a1b2c3d4",
		TransactionID:     "mid-real-123",
		TransactionStatus: "settlement",
	})
	require.NoError(t, err)
	assert.Equal(t, "mid-real-123", got.TransactionID)
	mockPayments.AssertExpectations(t)
}
