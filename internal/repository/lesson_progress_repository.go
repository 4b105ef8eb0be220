package repository

import (
	"errors"
	"strings"
	"time"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type LessonProgressRepository struct {
	DB *gorm.DB
}

func NewLessonProgressRepository(db *gorm.DB) *LessonProgressRepository {
	return &LessonProgressRepository{DB: db}
}

// EnsureExists 惰性创建进度记录，并发下靠 (enrollment_id, lesson_id) 唯一索引兜底：
// 插入撞索引说明另一请求已建好，重查一次即可
func (r *LessonProgressRepository) EnsureExists(tenantID, enrollmentID, lessonID string) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	err := r.DB.First(&progress, "enrollment_id = ? AND lesson_id = ?", enrollmentID, lessonID).Error
	if err == nil {
		return &progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	progress = model.LessonProgress{
		TenantBase:   model.TenantBase{TenantID: tenantID},
		EnrollmentID: enrollmentID,
		LessonID:     lessonID,
		StartedAt:    time.Now(),
	}
	err = r.DB.Create(&progress).Error
	if err == nil {
		return &progress, nil
	}
	if IsDuplicateKeyErr(err) {
		var existing model.LessonProgress
		if ferr := r.DB.First(&existing, "enrollment_id = ? AND lesson_id = ?", enrollmentID, lessonID).Error; ferr == nil {
			return &existing, nil
		}
	}
	return nil, err
}

// ApplyReport 单条条件更新落一次进度上报：
//   - completion_percentage 和 watch_time 取已存值与上报值的较大者
//   - last_position 总是覆盖为最新值
//   - completed 在百分比首次达到阈值时置位，之后保持，completed_at 只写一次
//
// 整个取大比较在同一条 UPDATE 里完成，并发上报不会互相覆盖。
// MySQL 按赋值顺序用已更新的值求值，各 CASE 守卫只允许引用自身列
func (r *LessonProgressRepository) ApplyReport(enrollmentID, lessonID string, percentage, watchTime, lastPosition, threshold int) error {
	now := time.Now()
	return r.DB.Model(&model.LessonProgress{}).
		Where("enrollment_id = ? AND lesson_id = ?", enrollmentID, lessonID).
		Updates(map[string]interface{}{
			"completion_percentage": gorm.Expr(
				"CASE WHEN completion_percentage < ? THEN ? ELSE completion_percentage END",
				percentage, percentage),
			"watch_time": gorm.Expr(
				"CASE WHEN watch_time < ? THEN ? ELSE watch_time END",
				watchTime, watchTime),
			"last_position": lastPosition,
			"completed_at": gorm.Expr(
				"CASE WHEN completed_at IS NULL AND ? >= ? THEN ? ELSE completed_at END",
				percentage, threshold, now),
			"completed": gorm.Expr(
				"CASE WHEN ? >= ? THEN ? ELSE completed END",
				percentage, threshold, true),
		}).Error
}

// MarkCompleted 显式完成课时（如文本、测验类），按完成阈值记百分比，
// 已有更高进度不回退
func (r *LessonProgressRepository) MarkCompleted(enrollmentID, lessonID string, percentage int) error {
	now := time.Now()
	return r.DB.Model(&model.LessonProgress{}).
		Where("enrollment_id = ? AND lesson_id = ?", enrollmentID, lessonID).
		Updates(map[string]interface{}{
			"completion_percentage": gorm.Expr(
				"CASE WHEN completion_percentage < ? THEN ? ELSE completion_percentage END",
				percentage, percentage),
			"completed_at": gorm.Expr(
				"CASE WHEN completed_at IS NULL THEN ? ELSE completed_at END", now),
			"completed": true,
		}).Error
}

func (r *LessonProgressRepository) Find(enrollmentID, lessonID string) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	err := r.DB.First(&progress, "enrollment_id = ? AND lesson_id = ?", enrollmentID, lessonID).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *LessonProgressRepository) ListByEnrollment(enrollmentID string) ([]model.LessonProgress, error) {
	var items []model.LessonProgress
	err := r.DB.Where("enrollment_id = ?", enrollmentID).
		Order("started_at").
		Find(&items).Error
	return items, err
}

// CountCompletedMandatory 统计报名下已完成的必修课时数，连表过滤掉
// 选修、未发布及已软删除的课时，保证与分母口径一致
func (r *LessonProgressRepository) CountCompletedMandatory(enrollmentID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progress.lesson_id").
		Where("lesson_progress.enrollment_id = ? AND lesson_progress.completed = ?", enrollmentID, true).
		Where("lessons.mandatory = ? AND lessons.published = ? AND lessons.deleted_at IS NULL", true, true).
		Count(&count).Error
	return count, err
}

// SumWatchTime 汇总报名下所有课时的观看时长（秒）
func (r *LessonProgressRepository) SumWatchTime(enrollmentID string) (int, error) {
	var total *int
	err := r.DB.Model(&model.LessonProgress{}).
		Where("enrollment_id = ?", enrollmentID).
		Select("SUM(watch_time)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// IsDuplicateKeyErr 识别唯一索引冲突，兼容MySQL和sqlite的报错文案
func IsDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
