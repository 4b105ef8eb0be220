package controller

import (
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
	ProgressService   *service.ProgressService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService, progressService *service.ProgressService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService, ProgressService: progressService}
}

// Enroll godoc
// @Summary 报名课程
// @Description 免费课程报名即生效，付费课程建待支付单，确认支付后生效
// @Tags 报名
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课程ID"
// @Success 201 {object} util.Response{data=service.EnrollResult}
// @Failure 409 {object} util.Response "已报名/课程未发布/名额已满"
// @Router /api/v1/courses/{id}/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	result, err := c.EnrollmentService.Enroll(claims.TenantID, claims.UserID, ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// ListMine godoc
// @Summary 我的报名列表
// @Tags 报名
// @Produce  json
// @Security BearerAuth
// @Param   status query string false "报名状态"
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/v1/enrollments [get]
func (c *EnrollmentController) ListMine(ctx *gin.Context) {
	page := util.ParseIntDefault(ctx.Query("page"), 1)
	limit := util.ParseIntDefault(ctx.Query("limit"), 20)

	claims := util.GetUserFromContext(ctx)
	enrollments, total, err := c.EnrollmentService.ListByUser(
		claims.TenantID, claims.UserID, model.EnrollmentStatus(ctx.Query("status")), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: enrollments, Total: total, Page: page, Limit: limit})
}

// ListByCourse godoc
// @Summary 课程报名列表（教师/管理员）
// @Tags 报名
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课程ID"
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/v1/courses/{id}/enrollments [get]
func (c *EnrollmentController) ListByCourse(ctx *gin.Context) {
	page := util.ParseIntDefault(ctx.Query("page"), 1)
	limit := util.ParseIntDefault(ctx.Query("limit"), 20)

	enrollments, total, err := c.EnrollmentService.ListByCourse(middleware.TenantID(ctx), ctx.Param("id"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: enrollments, Total: total, Page: page, Limit: limit})
}

// Withdraw godoc
// @Summary 退出课程
// @Description 仅pending或active状态的报名可退，进度记录保留
// @Tags 报名
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "报名ID"
// @Success 200 {object} util.Response{data=model.Enrollment}
// @Failure 409 {object} util.Response "报名已处于终态"
// @Router /api/v1/enrollments/{id}/withdraw [post]
func (c *EnrollmentController) Withdraw(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	enrollment, err := c.EnrollmentService.Withdraw(ctx.Request.Context(), claims.TenantID, claims.UserID, ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, enrollment)
}

// CourseProgress godoc
// @Summary 课程进度摘要
// @Description 返回报名状态、课程完成率和逐课时进度，结果短时缓存
// @Tags 进度
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课程ID"
// @Success 200 {object} util.Response{data=model.CourseProgressSummary}
// @Failure 404 {object} util.Response "未报名该课程"
// @Router /api/v1/courses/{id}/progress [get]
func (c *EnrollmentController) CourseProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	summary, err := c.ProgressService.GetCourseProgress(ctx.Request.Context(), claims.TenantID, claims.UserID, ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}
