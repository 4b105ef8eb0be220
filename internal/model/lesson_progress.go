package model

import (
	"time"
)

// LessonProgress 学员在单个课时上的观看进度
// 完成百分比与观看时长只增不减，completed 置位后不再回退；
// 单调性由仓储层的条件更新语句保证，而非应用层读改写
// swagger:model LessonProgress
type LessonProgress struct {
	TenantBase
	EnrollmentID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_enrollment_lesson" json:"enrollmentId"`
	LessonID     string `gorm:"type:varchar(36);not null;uniqueIndex:idx_enrollment_lesson" json:"lessonId"`

	CompletionPercentage int  `gorm:"default:0" json:"completionPercentage"`
	WatchTime            int  `gorm:"default:0" json:"watchTime"`    // 秒
	LastPosition         int  `gorm:"default:0" json:"lastPosition"` // 秒，最近一次播放位置
	Completed            bool `gorm:"default:false;index" json:"completed"`

	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
