package model

// CourseReview 学员对课程的评价，每人每课程一条
// swagger:model CourseReview
type CourseReview struct {
	TenantBase
	UserID   string `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_course_review" json:"userId"`
	CourseID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_course_review" json:"courseId"`
	Rating   int    `gorm:"not null" json:"rating"` // 1-5
	Comment  string `gorm:"type:text" json:"comment"`
	Public   bool   `gorm:"default:true" json:"public"`
}

func (CourseReview) TableName() string {
	return "course_reviews"
}
