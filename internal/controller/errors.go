package controller

import (
	"errors"
	"net/http"

	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// serviceErrStatus 业务错误到HTTP状态码的映射，未列出的按500处理
var serviceErrStatus = map[error]int{
	util.ErrUserNotFound:         http.StatusNotFound,
	util.ErrEmailRegistered:      http.StatusConflict,
	util.ErrInvalidCredentials:   http.StatusUnauthorized,
	util.ErrUserDisabled:         http.StatusForbidden,
	util.ErrTenantNotFound:       http.StatusNotFound,
	util.ErrTenantQuotaExceeded:  http.StatusForbidden,
	util.ErrSubdomainTaken:       http.StatusConflict,
	util.ErrPermissionDenied:     http.StatusForbidden,
	util.ErrCourseNotFound:       http.StatusNotFound,
	util.ErrCourseNotPublished:   http.StatusConflict,
	util.ErrCourseFull:           http.StatusConflict,
	util.ErrCourseHasNoLessons:   http.StatusConflict,
	util.ErrCategoryNotFound:     http.StatusNotFound,
	util.ErrModuleNotFound:       http.StatusNotFound,
	util.ErrLessonNotFound:       http.StatusNotFound,
	util.ErrLessonNotInCourse:    http.StatusConflict,
	util.ErrAlreadyEnrolled:      http.StatusConflict,
	util.ErrNotEnrolled:          http.StatusNotFound,
	util.ErrEnrollmentNotFound:   http.StatusNotFound,
	util.ErrEnrollmentInactive:   http.StatusConflict,
	util.ErrEnrollmentTerminal:   http.StatusConflict,
	util.ErrInvalidPercentage:    http.StatusBadRequest,
	util.ErrInvalidWatchTime:     http.StatusBadRequest,
	util.ErrInvalidPosition:      http.StatusBadRequest,
	util.ErrInvalidRating:        http.StatusBadRequest,
	util.ErrPaymentNotFound:      http.StatusNotFound,
	util.ErrPaymentNotPending:    http.StatusConflict,
	util.ErrPaymentNotCompleted:  http.StatusConflict,
	util.ErrCourseFree:           http.StatusConflict,
	util.ErrRefundExceedsAmount:  http.StatusBadRequest,
	util.ErrUnsupportedMediaType: http.StatusUnsupportedMediaType,
}

func handleServiceError(ctx *gin.Context, err error) {
	for sentinel, status := range serviceErrStatus {
		if errors.Is(err, sentinel) {
			util.Error(ctx, status, sentinel.Error())
			return
		}
	}
	util.LogInternalError(ctx, err)
}
