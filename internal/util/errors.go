package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserDisabled         = errors.New("account is disabled")
	ErrTenantNotFound       = errors.New("tenant not found")
	ErrTenantQuotaExceeded  = errors.New("tenant quota exceeded")
	ErrSubdomainTaken       = errors.New("subdomain already taken")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrCourseNotFound       = errors.New("course not found")
	ErrCourseNotPublished   = errors.New("course not published")
	ErrCourseFull           = errors.New("course is full")
	ErrCourseHasNoLessons   = errors.New("course has no mandatory lessons to publish")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrModuleNotFound       = errors.New("module not found")
	ErrLessonNotFound       = errors.New("lesson not found")
	ErrLessonNotInCourse    = errors.New("lesson does not belong to the enrolled course")
	ErrAlreadyEnrolled      = errors.New("already enrolled in this course")
	ErrNotEnrolled          = errors.New("not enrolled in this course")
	ErrEnrollmentNotFound   = errors.New("enrollment not found")
	ErrEnrollmentInactive   = errors.New("enrollment is not active")
	ErrEnrollmentTerminal   = errors.New("enrollment already completed or withdrawn")
	ErrInvalidPercentage    = errors.New("completion percentage must be between 0 and 100")
	ErrInvalidWatchTime     = errors.New("watch time must not be negative")
	ErrInvalidPosition      = errors.New("playback position out of range")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentNotPending    = errors.New("payment is not pending")
	ErrPaymentNotCompleted  = errors.New("payment is not completed")
	ErrCourseFree           = errors.New("course is free, no payment required")
	ErrRefundExceedsAmount  = errors.New("refund amount exceeds available amount")
	ErrUnsupportedMediaType = errors.New("unsupported file type")
)
