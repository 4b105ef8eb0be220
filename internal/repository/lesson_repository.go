package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) FindByID(tenantID, id string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, "tenant_id = ? AND id = ?", tenantID, id).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *LessonRepository) ListByModule(tenantID, moduleID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("tenant_id = ? AND module_id = ?", tenantID, moduleID).
		Order("`order`").
		Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) ListByCourse(tenantID, courseID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("tenant_id = ? AND course_id = ?", tenantID, courseID).
		Order("module_id, `order`").
		Find(&lessons).Error
	return lessons, err
}

// NextOrder 返回模块下一个课时序号
func (r *LessonRepository) NextOrder(moduleID string) (int, error) {
	var max *int
	err := r.DB.Model(&model.Lesson{}).
		Where("module_id = ?", moduleID).
		Select("MAX(`order`)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 1, nil
	}
	return *max + 1, nil
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) Delete(tenantID, id string) error {
	return r.DB.Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&model.Lesson{}).Error
}

// CountMandatory 统计课程中计入完成率的课时数（必修且已发布，软删除不计）
func (r *LessonRepository) CountMandatory(courseID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).
		Where("course_id = ? AND mandatory = ? AND published = ?", courseID, true, true).
		Count(&count).Error
	return count, err
}
