package model

// LessonProgressItem 课程进度摘要中的单课时条目
type LessonProgressItem struct {
	LessonID             string `json:"lessonId"`
	LessonTitle          string `json:"lessonTitle"`
	ModuleID             string `json:"moduleId"`
	ModuleTitle          string `json:"moduleTitle"`
	Mandatory            bool   `json:"mandatory"`
	Completed            bool   `json:"completed"`
	CompletionPercentage int    `json:"completionPercentage"`
	WatchTime            int    `json:"watchTime"`
	LastPosition         int    `json:"lastPosition"`
}

// CourseProgressSummary GET /courses/:id/progress 的响应体
type CourseProgressSummary struct {
	EnrollmentID         string               `json:"enrollmentId"`
	Status               EnrollmentStatus     `json:"status"`
	CompletionPercentage int                  `json:"completionPercentage"`
	CompletedLessons     int                  `json:"completedLessons"`
	TotalLessons         int                  `json:"totalLessons"`
	LessonProgress       []LessonProgressItem `json:"lessonProgress"`
}
