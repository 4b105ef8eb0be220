package repository

import (
	"time"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(payment *model.Payment) error {
	return r.DB.Create(payment).Error
}

func (r *PaymentRepository) FindByID(tenantID, id string) (*model.Payment, error) {
	var payment model.Payment
	err := r.DB.First(&payment, "tenant_id = ? AND id = ?", tenantID, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) ListByUser(tenantID, userID string, page, limit int) ([]model.Payment, int64, error) {
	var payments []model.Payment
	var total int64

	query := r.DB.Model(&model.Payment{}).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&payments).Error
	return payments, total, err
}

// Complete pending -> completed，条件更新防止重复确认
func (r *PaymentRepository) Complete(id, externalRef string) (bool, error) {
	result := r.DB.Model(&model.Payment{}).
		Where("id = ? AND status = ?", id, model.PaymentPending).
		Updates(map[string]interface{}{
			"status":       model.PaymentCompleted,
			"external_ref": externalRef,
			"completed_at": time.Now(),
		})
	return result.RowsAffected > 0, result.Error
}

func (r *PaymentRepository) Fail(id string) (bool, error) {
	result := r.DB.Model(&model.Payment{}).
		Where("id = ? AND status = ?", id, model.PaymentPending).
		Update("status", model.PaymentFailed)
	return result.RowsAffected > 0, result.Error
}

// Refund completed -> refunded
func (r *PaymentRepository) Refund(id string, amount float64, reason string) (bool, error) {
	result := r.DB.Model(&model.Payment{}).
		Where("id = ? AND status = ?", id, model.PaymentCompleted).
		Updates(map[string]interface{}{
			"status":        model.PaymentRefunded,
			"refund_amount": amount,
			"refund_reason": reason,
			"refunded_at":   time.Now(),
		})
	return result.RowsAffected > 0, result.Error
}
