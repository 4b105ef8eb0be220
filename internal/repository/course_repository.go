package repository

import (
	"time"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(tenantID, id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, "tenant_id = ? AND id = ?", tenantID, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// FindByIDWithContent 预加载模块和课时，按排序序号返回
func (r *CourseRepository) FindByIDWithContent(tenantID, id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("course_modules.`order`")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.`order`")
		}).
		First(&course, "tenant_id = ? AND id = ?", tenantID, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

type CourseFilter struct {
	Status       model.CourseStatus
	CategoryID   string
	InstructorID string
	Difficulty   string
	Keyword      string
	Page         int
	Limit        int
}

func (r *CourseRepository) List(tenantID string, filter CourseFilter) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	query := r.DB.Model(&model.Course{}).Where("tenant_id = ?", tenantID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.InstructorID != "" {
		query = query.Where("instructor_id = ?", filter.InstructorID)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) UpdateStatus(tenantID, id string, status model.CourseStatus) error {
	updates := map[string]interface{}{"status": status}
	if status == model.CoursePublished {
		updates["published_at"] = time.Now()
	}
	return r.DB.Model(&model.Course{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(updates).Error
}

func (r *CourseRepository) Delete(tenantID, id string) error {
	return r.DB.Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&model.Course{}).Error
}

// CategoryRepository 课程分类
type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) Create(category *model.Category) error {
	return r.DB.Create(category).Error
}

func (r *CategoryRepository) List(tenantID string) ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.Where("tenant_id = ?", tenantID).Order("name").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) FindByID(tenantID, id string) (*model.Category, error) {
	var category model.Category
	err := r.DB.First(&category, "tenant_id = ? AND id = ?", tenantID, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}
