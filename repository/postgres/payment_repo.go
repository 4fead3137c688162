package postgres

import (
	"context"
	"errors"

	"github.com/ivanfarhani22/management-ecommerce-sub000/models"
	"github.com/ivanfarhani22/management-ecommerce-sub000/repository"
	"gorm.io/gorm"
)

type paymentRepo struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) repository.PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Joins("JOIN orders ON orders.id = payments.order_id").
		Where("orders.order_number = ?", orderNumber).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepo) UpdateStatus(ctx context.Context, paymentID uint, status models.PaymentStatus) error {
	return r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ?", paymentID).
		Update("status", status).Error
}

func (r *paymentRepo) SetGatewayRef(ctx context.Context, paymentID uint, token, transactionID string) error {
	return r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ?", paymentID).
		Updates(map[string]interface{}{
			"snap_token":     token,
			"transaction_id": transactionID,
		}).Error
}
