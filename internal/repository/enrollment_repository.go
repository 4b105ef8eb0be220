package repository

import (
	"time"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

// Create 新报名落库。(user_id, course_id, active_key) 唯一索引挡住
// 并发下的第二条非终态报名，撞索引由调用方按重复报名处理
func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	if !enrollment.Status.Terminal() {
		key := model.EnrollmentActiveKey
		enrollment.ActiveKey = &key
	}
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) FindByID(tenantID, id string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.First(&enrollment, "tenant_id = ? AND id = ?", tenantID, id).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// FindCurrent 查询用户在课程中的有效报名（pending或active，不含已结束状态）
func (r *EnrollmentRepository) FindCurrent(tenantID, userID, courseID string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.First(&enrollment,
		"tenant_id = ? AND user_id = ? AND course_id = ? AND status IN ?",
		tenantID, userID, courseID,
		[]model.EnrollmentStatus{model.EnrollmentPending, model.EnrollmentActive}).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) FindByUserAndCourse(tenantID, userID, courseID string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Order("enrolled_at DESC").
		First(&enrollment, "tenant_id = ? AND user_id = ? AND course_id = ?", tenantID, userID, courseID).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) ListByUser(tenantID, userID string, status model.EnrollmentStatus, page, limit int) ([]model.Enrollment, int64, error) {
	var enrollments []model.Enrollment
	var total int64

	query := r.DB.Model(&model.Enrollment{}).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("enrolled_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&enrollments).Error
	return enrollments, total, err
}

func (r *EnrollmentRepository) ListByCourse(tenantID, courseID string, page, limit int) ([]model.Enrollment, int64, error) {
	var enrollments []model.Enrollment
	var total int64

	query := r.DB.Model(&model.Enrollment{}).
		Where("tenant_id = ? AND course_id = ?", tenantID, courseID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("enrolled_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&enrollments).Error
	return enrollments, total, err
}

// CountActive 统计课程当前占用名额的报名数（pending和active）
func (r *EnrollmentRepository) CountActive(courseID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("course_id = ? AND status IN ?", courseID,
			[]model.EnrollmentStatus{model.EnrollmentPending, model.EnrollmentActive}).
		Count(&count).Error
	return count, err
}

// Activate pending -> active，仅当仍处于pending时生效
func (r *EnrollmentRepository) Activate(id string) (bool, error) {
	result := r.DB.Model(&model.Enrollment{}).
		Where("id = ? AND status = ?", id, model.EnrollmentPending).
		Update("status", model.EnrollmentActive)
	return result.RowsAffected > 0, result.Error
}

// UpdateAggregate 写入汇总后的课程完成率和累计观看时长
func (r *EnrollmentRepository) UpdateAggregate(id string, percentage int, totalWatchTime int) error {
	return r.DB.Model(&model.Enrollment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"completion_percentage": percentage,
			"total_watch_time":      totalWatchTime,
		}).Error
}

// Complete active -> completed，条件更新保证只发生一次状态迁移。
// 迁入终态时释放 active_key，该学员可再次报名本课程
func (r *EnrollmentRepository) Complete(id string) (bool, error) {
	result := r.DB.Model(&model.Enrollment{}).
		Where("id = ? AND status = ?", id, model.EnrollmentActive).
		Updates(map[string]interface{}{
			"status":       model.EnrollmentCompleted,
			"completed_at": time.Now(),
			"active_key":   nil,
		})
	return result.RowsAffected > 0, result.Error
}

// Withdraw pending|active -> withdrawn
func (r *EnrollmentRepository) Withdraw(id string) (bool, error) {
	result := r.DB.Model(&model.Enrollment{}).
		Where("id = ? AND status IN ?", id,
			[]model.EnrollmentStatus{model.EnrollmentPending, model.EnrollmentActive}).
		Updates(map[string]interface{}{
			"status":       model.EnrollmentWithdrawn,
			"withdrawn_at": time.Now(),
			"active_key":   nil,
		})
	return result.RowsAffected > 0, result.Error
}
