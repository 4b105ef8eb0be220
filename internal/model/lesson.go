package model

type LessonType string

const (
	LessonVideo LessonType = "video"
	LessonText  LessonType = "text"
	LessonQuiz  LessonType = "quiz"
)

// Lesson 课时，Order 在章节内唯一；视频课时的时长在上传探测后回填
// swagger:model Lesson
type Lesson struct {
	TenantBase
	ModuleID    string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_module_order" json:"moduleId"`
	CourseID    string     `gorm:"type:varchar(36);index;not null" json:"courseId"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Content     string     `gorm:"type:text" json:"content"`
	Type        LessonType `gorm:"size:20;default:'video'" json:"type"`
	Order       int        `gorm:"not null;uniqueIndex:idx_module_order" json:"order"`
	Mandatory   bool       `gorm:"default:true" json:"mandatory"`
	Published   bool       `gorm:"default:false" json:"published"`

	// 视频相关
	VideoURL      string `gorm:"size:255" json:"videoUrl"`
	VideoDuration int    `gorm:"default:0" json:"videoDuration"` // 秒
}

func (Lesson) TableName() string {
	return "lessons"
}
