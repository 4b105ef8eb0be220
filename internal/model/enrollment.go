package model

import (
	"time"
)

type EnrollmentStatus string

const (
	EnrollmentPending   EnrollmentStatus = "pending"
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentWithdrawn EnrollmentStatus = "withdrawn"
)

// Terminal 报告该状态是否为终态，终态不再参与进度更新
func (s EnrollmentStatus) Terminal() bool {
	return s == EnrollmentCompleted || s == EnrollmentWithdrawn
}

// ActiveKey 的固定取值，见 Enrollment.ActiveKey
const EnrollmentActiveKey = "1"

// Enrollment 学员与课程的报名记录，聚合课程级完成度
// 同一 (学员, 课程) 至多存在一条非终态记录，由唯一索引在存储层保证
// swagger:model Enrollment
type Enrollment struct {
	TenantBase
	UserID   string           `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_course_active" json:"userId"`
	CourseID string           `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_course_active" json:"courseId"`
	Status   EnrollmentStatus `gorm:"size:20;default:'active';index" json:"status"`

	// ActiveKey 非终态报名固定为 EnrollmentActiveKey，终态清空为 NULL。
	// NULL 不参与唯一约束，历史终态记录可以任意多条
	ActiveKey *string `gorm:"size:4;uniqueIndex:idx_user_course_active" json:"-"`

	// 聚合进度：已完成必修课时 / 必修课时总数 ×100，向下取整
	CompletionPercentage int `gorm:"default:0" json:"completionPercentage"`
	TotalWatchTime       int `gorm:"default:0" json:"totalWatchTime"` // 秒

	EnrolledAt  time.Time  `json:"enrolledAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	WithdrawnAt *time.Time `json:"withdrawnAt,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
