package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo   *repository.CourseRepository
	CategoryRepo *repository.CategoryRepository
	ModuleRepo   *repository.ModuleRepository
	LessonRepo   *repository.LessonRepository
	TenantSvc    *TenantService
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	categoryRepo *repository.CategoryRepository,
	moduleRepo *repository.ModuleRepository,
	lessonRepo *repository.LessonRepository,
	tenantSvc *TenantService,
) *CourseService {
	return &CourseService{
		CourseRepo:   courseRepo,
		CategoryRepo: categoryRepo,
		ModuleRepo:   moduleRepo,
		LessonRepo:   lessonRepo,
		TenantSvc:    tenantSvc,
	}
}

type CreateCourseRequest struct {
	Title            string  `json:"title" binding:"required"`
	Description      string  `json:"description"`
	ShortDescription string  `json:"shortDescription"`
	Difficulty       string  `json:"difficulty"`
	IsFree           *bool   `json:"isFree"`
	Price            float64 `json:"price"`
	EstimatedHours   int     `json:"estimatedHours"`
	MaxStudents      *int    `json:"maxStudents"`
	CategoryID       string  `json:"categoryId"`
}

func (s *CourseService) Create(tenantID, instructorID string, req CreateCourseRequest) (*model.Course, error) {
	if err := s.TenantSvc.CanCreateCourse(tenantID); err != nil {
		return nil, err
	}

	course := &model.Course{
		TenantBase:       model.TenantBase{TenantID: tenantID},
		Title:            req.Title,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Status:           model.CourseDraft,
		Price:            req.Price,
		EstimatedHours:   req.EstimatedHours,
		MaxStudents:      req.MaxStudents,
		InstructorID:     instructorID,
	}
	if req.Difficulty != "" {
		course.Difficulty = model.CourseDifficulty(req.Difficulty)
	}
	if req.IsFree != nil {
		course.IsFree = *req.IsFree
	} else {
		course.IsFree = req.Price == 0
	}
	if req.CategoryID != "" {
		if _, err := s.CategoryRepo.FindByID(tenantID, req.CategoryID); err != nil {
			return nil, util.ErrCategoryNotFound
		}
		course.CategoryID = &req.CategoryID
	}

	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Get(tenantID, id string) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) GetWithContent(tenantID, id string) (*model.Course, error) {
	course, err := s.CourseRepo.FindByIDWithContent(tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) List(tenantID string, filter repository.CourseFilter) ([]model.Course, int64, error) {
	return s.CourseRepo.List(tenantID, filter)
}

type UpdateCourseRequest struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"shortDescription"`
	Thumbnail        string   `json:"thumbnail"`
	Difficulty       string   `json:"difficulty"`
	IsFree           *bool    `json:"isFree"`
	Price            *float64 `json:"price"`
	EstimatedHours   *int     `json:"estimatedHours"`
	MaxStudents      *int     `json:"maxStudents"`
}

func (s *CourseService) Update(tenantID, id string, req UpdateCourseRequest) (*model.Course, error) {
	course, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		course.Title = req.Title
	}
	if req.Description != "" {
		course.Description = req.Description
	}
	if req.ShortDescription != "" {
		course.ShortDescription = req.ShortDescription
	}
	if req.Thumbnail != "" {
		course.Thumbnail = req.Thumbnail
	}
	if req.Difficulty != "" {
		course.Difficulty = model.CourseDifficulty(req.Difficulty)
	}
	if req.IsFree != nil {
		course.IsFree = *req.IsFree
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.EstimatedHours != nil {
		course.EstimatedHours = *req.EstimatedHours
	}
	if req.MaxStudents != nil {
		course.MaxStudents = req.MaxStudents
	}

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

// Publish 发布课程，要求至少有一个已发布课时
func (s *CourseService) Publish(tenantID, id string) error {
	if _, err := s.Get(tenantID, id); err != nil {
		return err
	}
	count, err := s.LessonRepo.CountMandatory(id)
	if err != nil {
		return err
	}
	if count == 0 {
		return util.ErrCourseHasNoLessons
	}
	return s.CourseRepo.UpdateStatus(tenantID, id, model.CoursePublished)
}

func (s *CourseService) Archive(tenantID, id string) error {
	if _, err := s.Get(tenantID, id); err != nil {
		return err
	}
	return s.CourseRepo.UpdateStatus(tenantID, id, model.CourseArchived)
}

func (s *CourseService) Delete(tenantID, id string) error {
	if _, err := s.Get(tenantID, id); err != nil {
		return err
	}
	return s.CourseRepo.Delete(tenantID, id)
}

// ---- 模块 ----

type CreateModuleRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// CreateModule 模块追加到课程末尾，序号取当前最大值+1
func (s *CourseService) CreateModule(tenantID, courseID string, req CreateModuleRequest) (*model.CourseModule, error) {
	if _, err := s.Get(tenantID, courseID); err != nil {
		return nil, err
	}

	order, err := s.ModuleRepo.NextOrder(courseID)
	if err != nil {
		return nil, err
	}

	m := &model.CourseModule{
		TenantBase:  model.TenantBase{TenantID: tenantID},
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		Order:       order,
	}
	if err := s.ModuleRepo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *CourseService) ListModules(tenantID, courseID string) ([]model.CourseModule, error) {
	return s.ModuleRepo.ListByCourse(tenantID, courseID)
}

func (s *CourseService) DeleteModule(tenantID, moduleID string) error {
	m, err := s.ModuleRepo.FindByID(tenantID, moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrModuleNotFound
		}
		return err
	}
	lessons, err := s.LessonRepo.ListByModule(tenantID, moduleID)
	if err != nil {
		return err
	}
	for _, lesson := range lessons {
		if err := s.LessonRepo.Delete(tenantID, lesson.ID); err != nil {
			return err
		}
	}
	return s.ModuleRepo.Delete(tenantID, m.ID)
}

// ---- 课时 ----

type CreateLessonRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Type        string `json:"type"`
	Mandatory   *bool  `json:"mandatory"`
}

func (s *CourseService) CreateLesson(tenantID, moduleID string, req CreateLessonRequest) (*model.Lesson, error) {
	m, err := s.ModuleRepo.FindByID(tenantID, moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	order, err := s.LessonRepo.NextOrder(moduleID)
	if err != nil {
		return nil, err
	}

	lesson := &model.Lesson{
		TenantBase:  model.TenantBase{TenantID: tenantID},
		ModuleID:    moduleID,
		CourseID:    m.CourseID,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Order:       order,
		Mandatory:   true,
	}
	if req.Type != "" {
		lesson.Type = model.LessonType(req.Type)
	}
	if req.Mandatory != nil {
		lesson.Mandatory = *req.Mandatory
	}

	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CourseService) GetLesson(tenantID, id string) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	return lesson, nil
}

type UpdateLessonRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Mandatory   *bool  `json:"mandatory"`
	Published   *bool  `json:"published"`
}

func (s *CourseService) UpdateLesson(tenantID, id string, req UpdateLessonRequest) (*model.Lesson, error) {
	lesson, err := s.GetLesson(tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		lesson.Title = req.Title
	}
	if req.Description != "" {
		lesson.Description = req.Description
	}
	if req.Content != "" {
		lesson.Content = req.Content
	}
	if req.Mandatory != nil {
		lesson.Mandatory = *req.Mandatory
	}
	if req.Published != nil {
		lesson.Published = *req.Published
	}

	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CourseService) DeleteLesson(tenantID, id string) error {
	if _, err := s.GetLesson(tenantID, id); err != nil {
		return err
	}
	return s.LessonRepo.Delete(tenantID, id)
}

// ---- 分类 ----

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ParentID    string `json:"parentId"`
}

func (s *CourseService) CreateCategory(tenantID string, req CreateCategoryRequest) (*model.Category, error) {
	category := &model.Category{
		TenantBase:  model.TenantBase{TenantID: tenantID},
		Name:        req.Name,
		Description: req.Description,
	}
	if req.ParentID != "" {
		if _, err := s.CategoryRepo.FindByID(tenantID, req.ParentID); err != nil {
			return nil, util.ErrCategoryNotFound
		}
		category.ParentID = &req.ParentID
	}
	if err := s.CategoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CourseService) ListCategories(tenantID string) ([]model.Category, error) {
	return s.CategoryRepo.List(tenantID)
}
