package service

import (
	"context"
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PaymentService struct {
	PaymentRepo    *repository.PaymentRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Redis          *redis.Client
}

func NewPaymentService(paymentRepo *repository.PaymentRepository, enrollmentRepo *repository.EnrollmentRepository, redisClient *redis.Client) *PaymentService {
	return &PaymentService{PaymentRepo: paymentRepo, EnrollmentRepo: enrollmentRepo, Redis: redisClient}
}

func (s *PaymentService) Get(tenantID, id string) (*model.Payment, error) {
	payment, err := s.PaymentRepo.FindByID(tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) ListByUser(tenantID, userID string, page, limit int) ([]model.Payment, int64, error) {
	return s.PaymentRepo.ListByUser(tenantID, userID, page, limit)
}

type ConfirmPaymentRequest struct {
	ExternalRef string `json:"externalRef"`
	Method      string `json:"method"`
}

// Confirm 确认支付：支付单 pending -> completed，
// 对应报名 pending -> active。重复确认返回错误
func (s *PaymentService) Confirm(ctx context.Context, tenantID, userID, id string, req ConfirmPaymentRequest) (*model.Payment, error) {
	payment, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}
	if payment.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	ok, err := s.PaymentRepo.Complete(id, req.ExternalRef)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrPaymentNotPending
	}

	if _, err := s.EnrollmentRepo.Activate(payment.EnrollmentID); err != nil {
		// 支付已记账，激活失败只记日志，待人工或重试补偿
		logger.Log.Error("payment confirmed but enrollment activation failed",
			zap.String("payment_id", id),
			zap.String("enrollment_id", payment.EnrollmentID),
			zap.Error(err))
	}
	invalidateProgressSummary(ctx, s.Redis, payment.EnrollmentID)

	logger.Log.Info("payment confirmed",
		zap.String("payment_id", id),
		zap.String("enrollment_id", payment.EnrollmentID))

	return s.Get(tenantID, id)
}

func (s *PaymentService) Fail(tenantID, id string) (*model.Payment, error) {
	if _, err := s.Get(tenantID, id); err != nil {
		return nil, err
	}
	ok, err := s.PaymentRepo.Fail(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrPaymentNotPending
	}
	return s.Get(tenantID, id)
}

type RefundRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Reason string  `json:"reason"`
}

// Refund 退款：支付单 completed -> refunded，报名同步退出
func (s *PaymentService) Refund(ctx context.Context, tenantID, id string, req RefundRequest) (*model.Payment, error) {
	payment, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}
	if req.Amount > payment.Amount {
		return nil, util.ErrRefundExceedsAmount
	}

	ok, err := s.PaymentRepo.Refund(id, req.Amount, req.Reason)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrPaymentNotCompleted
	}

	if _, err := s.EnrollmentRepo.Withdraw(payment.EnrollmentID); err != nil {
		logger.Log.Error("refund processed but enrollment withdrawal failed",
			zap.String("payment_id", id),
			zap.String("enrollment_id", payment.EnrollmentID),
			zap.Error(err))
	}
	invalidateProgressSummary(ctx, s.Redis, payment.EnrollmentID)

	return s.Get(tenantID, id)
}
