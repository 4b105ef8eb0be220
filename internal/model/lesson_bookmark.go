package model

// LessonBookmark 课时书签，记录学员标记的播放位置和笔记
// swagger:model LessonBookmark
type LessonBookmark struct {
	TenantBase
	UserID   string `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_lesson_bookmark" json:"userId"`
	LessonID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_lesson_bookmark" json:"lessonId"`
	Position int    `gorm:"default:0" json:"position"` // 秒
	Note     string `gorm:"type:text" json:"note"`
}

func (LessonBookmark) TableName() string {
	return "lesson_bookmarks"
}
