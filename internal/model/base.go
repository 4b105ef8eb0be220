package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// swagger:model
type UUIDBase struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *UUIDBase) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return
}

// TenantBase 所有租户内实体的公共字段，租户隔离在仓储层按 TenantID 过滤
type TenantBase struct {
	UUIDBase
	TenantID string `gorm:"type:varchar(36);index;not null" json:"tenantId"`
}

func GenerateUUID() string {
	return uuid.New().String()
}
