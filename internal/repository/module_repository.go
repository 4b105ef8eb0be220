package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) Create(m *model.CourseModule) error {
	return r.DB.Create(m).Error
}

func (r *ModuleRepository) FindByID(tenantID, id string) (*model.CourseModule, error) {
	var m model.CourseModule
	err := r.DB.First(&m, "tenant_id = ? AND id = ?", tenantID, id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ModuleRepository) ListByCourse(tenantID, courseID string) ([]model.CourseModule, error) {
	var modules []model.CourseModule
	err := r.DB.Where("tenant_id = ? AND course_id = ?", tenantID, courseID).
		Order("`order`").
		Find(&modules).Error
	return modules, err
}

// NextOrder 返回课程下一个模块序号（当前最大值+1，空课程为1）
func (r *ModuleRepository) NextOrder(courseID string) (int, error) {
	var max *int
	err := r.DB.Model(&model.CourseModule{}).
		Where("course_id = ?", courseID).
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

func (r *ModuleRepository) Update(m *model.CourseModule) error {
	return r.DB.Save(m).Error
}

func (r *ModuleRepository) Delete(tenantID, id string) error {
	return r.DB.Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&model.CourseModule{}).Error
}
