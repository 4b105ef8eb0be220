package model

// CourseModule 课程下的章节，Order 在课程内唯一
// swagger:model CourseModule
type CourseModule struct {
	TenantBase
	CourseID    string `gorm:"type:varchar(36);not null;uniqueIndex:idx_course_order" json:"courseId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Order       int    `gorm:"not null;uniqueIndex:idx_course_order" json:"order"`
	Published   bool   `gorm:"default:false" json:"published"`

	Lessons []Lesson `gorm:"foreignKey:ModuleID" json:"lessons,omitempty"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}
