package controller

import (
	"lms_backend/internal/middleware"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	CourseService   *service.CourseService
	ProgressService *service.ProgressService
	ReviewService   *service.ReviewService
}

func NewLessonController(
	courseService *service.CourseService,
	progressService *service.ProgressService,
	reviewService *service.ReviewService,
) *LessonController {
	return &LessonController{
		CourseService:   courseService,
		ProgressService: progressService,
		ReviewService:   reviewService,
	}
}

// Create godoc
// @Summary 创建课时
// @Description 课时追加到模块末尾，序号自动分配
// @Tags 课时
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "模块ID"
// @Param   body body service.CreateLessonRequest true "课时信息"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Router /api/v1/modules/{id}/lessons [post]
func (c *LessonController) Create(ctx *gin.Context) {
	var req service.CreateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.CourseService.CreateLesson(middleware.TenantID(ctx), ctx.Param("id"), req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// Get godoc
// @Summary 课时详情
// @Tags 课时
// @Produce  json
// @Param   id path string true "课时ID"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Router /api/v1/lessons/{id} [get]
func (c *LessonController) Get(ctx *gin.Context) {
	lesson, err := c.CourseService.GetLesson(middleware.TenantID(ctx), ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// Update godoc
// @Summary 更新课时
// @Tags 课时
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课时ID"
// @Param   body body service.UpdateLessonRequest true "课时信息"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Router /api/v1/lessons/{id} [put]
func (c *LessonController) Update(ctx *gin.Context) {
	var req service.UpdateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.CourseService.UpdateLesson(middleware.TenantID(ctx), ctx.Param("id"), req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// Delete godoc
// @Summary 删除课时
// @Description 软删除，已有进度记录保留，完成率口径同步收缩
// @Tags 课时
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课时ID"
// @Success 200 {object} util.Response
// @Router /api/v1/lessons/{id} [delete]
func (c *LessonController) Delete(ctx *gin.Context) {
	if err := c.CourseService.DeleteLesson(middleware.TenantID(ctx), ctx.Param("id")); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ReportProgress godoc
// @Summary 上报课时观看进度
// @Description 百分比和观看时长只增不减，达到完成阈值后课时记为已完成；
// @Description 课程级完成率随之重算，达到100时报名自动迁移为已完成
// @Tags 进度
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课时ID"
// @Param   body body service.ReportProgressRequest true "进度数据"
// @Success 200 {object} util.Response{data=model.LessonProgress}
// @Failure 400 {object} util.Response "进度数据越界"
// @Failure 409 {object} util.Response "报名非active状态"
// @Router /api/v1/lessons/{id}/progress [post]
func (c *LessonController) ReportProgress(ctx *gin.Context) {
	var req service.ReportProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	progress, err := c.ProgressService.ReportProgress(ctx.Request.Context(), claims.TenantID, claims.UserID, ctx.Param("id"), req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// Complete godoc
// @Summary 标记课时完成
// @Description 文本、测验类课时显式完成，直接置满进度
// @Tags 进度
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课时ID"
// @Success 200 {object} util.Response{data=model.LessonProgress}
// @Router /api/v1/lessons/{id}/complete [post]
func (c *LessonController) Complete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	progress, err := c.ProgressService.CompleteLesson(ctx.Request.Context(), claims.TenantID, claims.UserID, ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// SaveBookmark godoc
// @Summary 保存课时书签
// @Tags 课时
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课时ID"
// @Param   body body service.SaveBookmarkRequest true "书签"
// @Success 201 {object} util.Response{data=model.LessonBookmark}
// @Router /api/v1/lessons/{id}/bookmark [put]
func (c *LessonController) SaveBookmark(ctx *gin.Context) {
	var req service.SaveBookmarkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	bookmark, err := c.ReviewService.SaveBookmark(claims.TenantID, claims.UserID, ctx.Param("id"), req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, bookmark)
}

// DeleteBookmark godoc
// @Summary 删除课时书签
// @Tags 课时
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课时ID"
// @Success 200 {object} util.Response
// @Router /api/v1/lessons/{id}/bookmark [delete]
func (c *LessonController) DeleteBookmark(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.ReviewService.DeleteBookmark(claims.TenantID, claims.UserID, ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListBookmarks godoc
// @Summary 我的书签列表
// @Tags 课时
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.LessonBookmark}
// @Router /api/v1/bookmarks [get]
func (c *LessonController) ListBookmarks(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	bookmarks, err := c.ReviewService.ListBookmarks(claims.TenantID, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, bookmarks)
}
