package model

import (
	"time"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	MethodStripe       PaymentMethod = "stripe"
	MethodPaypal       PaymentMethod = "paypal"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

// Payment 付费课程的支付记录，确认支付后报名记录由 pending 转为 active
// swagger:model Payment
type Payment struct {
	TenantBase
	UserID       string `gorm:"type:varchar(36);index;not null" json:"userId"`
	CourseID     string `gorm:"type:varchar(36);index;not null" json:"courseId"`
	EnrollmentID string `gorm:"type:varchar(36);index;not null" json:"enrollmentId"`

	Amount   float64       `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency string        `gorm:"size:3;default:'USD'" json:"currency"`
	Status   PaymentStatus `gorm:"size:20;default:'pending';index" json:"status"`
	Method   PaymentMethod `gorm:"size:20;default:'stripe'" json:"method"`

	// 第三方支付平台的单号
	ExternalRef string `gorm:"size:255" json:"externalRef"`

	RefundAmount float64    `gorm:"type:decimal(10,2);default:0" json:"refundAmount"`
	RefundReason string     `gorm:"type:text" json:"refundReason"`
	RefundedAt   *time.Time `json:"refundedAt,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}
