package model

import (
	"time"
)

type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePublished CourseStatus = "published"
	CourseArchived  CourseStatus = "archived"
)

type CourseDifficulty string

const (
	DifficultyBeginner     CourseDifficulty = "beginner"
	DifficultyIntermediate CourseDifficulty = "intermediate"
	DifficultyAdvanced     CourseDifficulty = "advanced"
)

// swagger:model Category
type Category struct {
	TenantBase
	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	ParentID    *string `gorm:"type:varchar(36);index" json:"parentId,omitempty"`
}

func (Category) TableName() string {
	return "course_categories"
}

// swagger:model Course
type Course struct {
	TenantBase
	Title            string           `gorm:"size:255;not null" json:"title"`
	Description      string           `gorm:"type:text" json:"description"`
	ShortDescription string           `gorm:"size:500" json:"shortDescription"`
	Thumbnail        string           `gorm:"size:255" json:"thumbnail"`
	Status           CourseStatus     `gorm:"size:20;default:'draft';index" json:"status"`
	Difficulty       CourseDifficulty `gorm:"size:20;default:'beginner'" json:"difficulty"`
	IsFree           bool             `gorm:"default:true" json:"isFree"`
	Price            float64          `gorm:"type:decimal(10,2);default:0" json:"price"`
	EstimatedHours   int              `gorm:"default:1" json:"estimatedHours"`
	MaxStudents      *int             `json:"maxStudents,omitempty"`
	InstructorID     string           `gorm:"type:varchar(36);index;not null" json:"instructorId"`
	CategoryID       *string          `gorm:"type:varchar(36);index" json:"categoryId,omitempty"`
	PublishedAt      *time.Time       `json:"publishedAt,omitempty"`

	Modules []CourseModule `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
