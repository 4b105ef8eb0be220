package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type ReviewService struct {
	ReviewRepo     *repository.ReviewRepository
	BookmarkRepo   *repository.BookmarkRepository
	EnrollmentRepo *repository.EnrollmentRepository
	LessonRepo     *repository.LessonRepository
}

func NewReviewService(
	reviewRepo *repository.ReviewRepository,
	bookmarkRepo *repository.BookmarkRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	lessonRepo *repository.LessonRepository,
) *ReviewService {
	return &ReviewService{
		ReviewRepo:     reviewRepo,
		BookmarkRepo:   bookmarkRepo,
		EnrollmentRepo: enrollmentRepo,
		LessonRepo:     lessonRepo,
	}
}

type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
	Public  *bool  `json:"public"`
}

// SubmitReview 学员评价课程，要求在该课程有报名记录，每人一条，重复提交覆盖
func (s *ReviewService) SubmitReview(tenantID, userID, courseID string, req SubmitReviewRequest) (*model.CourseReview, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, util.ErrInvalidRating
	}

	if _, err := s.EnrollmentRepo.FindByUserAndCourse(tenantID, userID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}

	review := &model.CourseReview{
		TenantBase: model.TenantBase{TenantID: tenantID},
		UserID:     userID,
		CourseID:   courseID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		Public:     true,
	}
	if req.Public != nil {
		review.Public = *req.Public
	}

	if err := s.ReviewRepo.Upsert(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListCourseReviews(tenantID, courseID string, page, limit int) ([]model.CourseReview, int64, float64, error) {
	reviews, total, err := s.ReviewRepo.ListPublicByCourse(tenantID, courseID, page, limit)
	if err != nil {
		return nil, 0, 0, err
	}
	avg, err := s.ReviewRepo.AverageRating(courseID)
	if err != nil {
		return nil, 0, 0, err
	}
	return reviews, total, avg, nil
}

type SaveBookmarkRequest struct {
	Position int    `json:"position" binding:"min=0"`
	Note     string `json:"note"`
}

// SaveBookmark 保存课时书签，每人每课时一条
func (s *ReviewService) SaveBookmark(tenantID, userID, lessonID string, req SaveBookmarkRequest) (*model.LessonBookmark, error) {
	lesson, err := s.LessonRepo.FindByID(tenantID, lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	if lesson.Type == model.LessonVideo && lesson.VideoDuration > 0 && req.Position > lesson.VideoDuration {
		return nil, util.ErrInvalidPosition
	}

	bookmark := &model.LessonBookmark{
		TenantBase: model.TenantBase{TenantID: tenantID},
		UserID:     userID,
		LessonID:   lessonID,
		Position:   req.Position,
		Note:       req.Note,
	}
	if err := s.BookmarkRepo.Upsert(bookmark); err != nil {
		return nil, err
	}
	return bookmark, nil
}

func (s *ReviewService) ListBookmarks(tenantID, userID string) ([]model.LessonBookmark, error) {
	return s.BookmarkRepo.ListByUser(tenantID, userID)
}

func (s *ReviewService) DeleteBookmark(tenantID, userID, lessonID string) error {
	return s.BookmarkRepo.Delete(tenantID, userID, lessonID)
}
