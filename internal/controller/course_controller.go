package controller

import (
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
	ReviewService *service.ReviewService
}

func NewCourseController(courseService *service.CourseService, reviewService *service.ReviewService) *CourseController {
	return &CourseController{CourseService: courseService, ReviewService: reviewService}
}

// List godoc
// @Summary 课程列表
// @Description 按状态、分类、难度、关键词过滤，分页返回
// @Tags 课程
// @Produce  json
// @Param   status query string false "课程状态"
// @Param   category query string false "分类ID"
// @Param   difficulty query string false "难度"
// @Param   keyword query string false "标题或描述关键词"
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/v1/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	page := util.ParseIntDefault(ctx.Query("page"), 1)
	limit := util.ParseIntDefault(ctx.Query("limit"), 20)

	filter := repository.CourseFilter{
		Status:     model.CourseStatus(ctx.Query("status")),
		CategoryID: ctx.Query("category"),
		Difficulty: ctx.Query("difficulty"),
		Keyword:    ctx.Query("keyword"),
		Page:       page,
		Limit:      limit,
	}

	// 未登录或学员只能看到已发布课程
	claims := util.GetUserFromContext(ctx)
	if claims == nil || claims.Role == model.Student {
		filter.Status = model.CoursePublished
	}

	courses, total, err := c.CourseService.List(middleware.TenantID(ctx), filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary 课程详情
// @Description 返回课程及其模块、课时结构
// @Tags 课程
// @Produce  json
// @Param   id path string true "课程ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/v1/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	course, err := c.CourseService.GetWithContent(middleware.TenantID(ctx), ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// Create godoc
// @Summary 创建课程
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreateCourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 403 {object} util.Response "租户课程配额已满"
// @Router /api/v1/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req service.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	course, err := c.CourseService.Create(claims.TenantID, claims.UserID, req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// Update godoc
// @Summary 更新课程
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课程ID"
// @Param   body body service.UpdateCourseRequest true "课程信息"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/v1/courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	var req service.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Update(middleware.TenantID(ctx), ctx.Param("id"), req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// Publish godoc
// @Summary 发布课程
// @Description 课程需至少包含一个必修课时才能发布
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课程ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "课程没有必修课时"
// @Router /api/v1/courses/{id}/publish [post]
func (c *CourseController) Publish(ctx *gin.Context) {
	if err := c.CourseService.Publish(middleware.TenantID(ctx), ctx.Param("id")); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Archive godoc
// @Summary 归档课程
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/v1/courses/{id}/archive [post]
func (c *CourseController) Archive(ctx *gin.Context) {
	if err := c.CourseService.Archive(middleware.TenantID(ctx), ctx.Param("id")); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Delete godoc
// @Summary 删除课程
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/v1/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	if err := c.CourseService.Delete(middleware.TenantID(ctx), ctx.Param("id")); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CreateModule godoc
// @Summary 创建课程模块
// @Description 模块追加到课程末尾，序号自动分配
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课程ID"
// @Param   body body service.CreateModuleRequest true "模块信息"
// @Success 201 {object} util.Response{data=model.CourseModule}
// @Router /api/v1/courses/{id}/modules [post]
func (c *CourseController) CreateModule(ctx *gin.Context) {
	var req service.CreateModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	m, err := c.CourseService.CreateModule(middleware.TenantID(ctx), ctx.Param("id"), req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, m)
}

// ListModules godoc
// @Summary 课程模块列表
// @Tags 课程
// @Produce  json
// @Param   id path string true "课程ID"
// @Success 200 {object} util.Response{data=[]model.CourseModule}
// @Router /api/v1/courses/{id}/modules [get]
func (c *CourseController) ListModules(ctx *gin.Context) {
	modules, err := c.CourseService.ListModules(middleware.TenantID(ctx), ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, modules)
}

// DeleteModule godoc
// @Summary 删除模块及其课时
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "模块ID"
// @Success 200 {object} util.Response
// @Router /api/v1/modules/{id} [delete]
func (c *CourseController) DeleteModule(ctx *gin.Context) {
	if err := c.CourseService.DeleteModule(middleware.TenantID(ctx), ctx.Param("id")); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CreateCategory godoc
// @Summary 创建课程分类
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreateCategoryRequest true "分类信息"
// @Success 201 {object} util.Response{data=model.Category}
// @Router /api/v1/categories [post]
func (c *CourseController) CreateCategory(ctx *gin.Context) {
	var req service.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	category, err := c.CourseService.CreateCategory(middleware.TenantID(ctx), req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, category)
}

// ListCategories godoc
// @Summary 课程分类列表
// @Tags 课程
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Category}
// @Router /api/v1/categories [get]
func (c *CourseController) ListCategories(ctx *gin.Context) {
	categories, err := c.CourseService.ListCategories(middleware.TenantID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}

// SubmitReview godoc
// @Summary 评价课程
// @Description 需有报名记录，每人每课程一条，重复提交覆盖
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课程ID"
// @Param   body body service.SubmitReviewRequest true "评价内容"
// @Success 201 {object} util.Response{data=model.CourseReview}
// @Failure 404 {object} util.Response "未报名该课程"
// @Router /api/v1/courses/{id}/reviews [post]
func (c *CourseController) SubmitReview(ctx *gin.Context) {
	var req service.SubmitReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	review, err := c.ReviewService.SubmitReview(claims.TenantID, claims.UserID, ctx.Param("id"), req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, review)
}

// ListReviews godoc
// @Summary 课程评价列表
// @Tags 课程
// @Produce  json
// @Param   id path string true "课程ID"
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数"
// @Success 200 {object} util.Response
// @Router /api/v1/courses/{id}/reviews [get]
func (c *CourseController) ListReviews(ctx *gin.Context) {
	page := util.ParseIntDefault(ctx.Query("page"), 1)
	limit := util.ParseIntDefault(ctx.Query("limit"), 20)

	reviews, total, avg, err := c.ReviewService.ListCourseReviews(middleware.TenantID(ctx), ctx.Param("id"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"reviews":       util.PageResponse{List: reviews, Total: total, Page: page, Limit: limit},
		"averageRating": avg,
	})
}
