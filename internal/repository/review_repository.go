package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

// Upsert 同一学员对同一课程重复评价时覆盖原评价
func (r *ReviewRepository) Upsert(review *model.CourseReview) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "public", "updated_at"}),
	}).Create(review).Error
}

func (r *ReviewRepository) ListPublicByCourse(tenantID, courseID string, page, limit int) ([]model.CourseReview, int64, error) {
	var reviews []model.CourseReview
	var total int64

	query := r.DB.Model(&model.CourseReview{}).
		Where("tenant_id = ? AND course_id = ? AND public = ?", tenantID, courseID, true)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reviews).Error
	return reviews, total, err
}

// AverageRating 课程公开评价的平均分，无评价时返回0
func (r *ReviewRepository) AverageRating(courseID string) (float64, error) {
	var avg *float64
	err := r.DB.Model(&model.CourseReview{}).
		Where("course_id = ? AND public = ?", courseID, true).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

func (r *ReviewRepository) Delete(tenantID, userID, courseID string) error {
	return r.DB.Where("tenant_id = ? AND user_id = ? AND course_id = ?", tenantID, userID, courseID).
		Delete(&model.CourseReview{}).Error
}
