package controller

import (
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// List godoc
// @Summary 租户用户列表（管理员）
// @Tags 用户
// @Produce  json
// @Security BearerAuth
// @Param   role query string false "按角色过滤"
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/v1/admin/users [get]
func (c *UserController) List(ctx *gin.Context) {
	page := util.ParseIntDefault(ctx.Query("page"), 1)
	limit := util.ParseIntDefault(ctx.Query("limit"), 20)

	users, total, err := c.UserService.List(middleware.TenantID(ctx), model.UserRole(ctx.Query("role")), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

// SetRole godoc
// @Summary 修改用户角色（管理员）
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "用户ID"
// @Param   body body service.SetRoleRequest true "角色"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/v1/admin/users/{id}/role [put]
func (c *UserController) SetRole(ctx *gin.Context) {
	var req service.SetRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.SetRole(middleware.TenantID(ctx), ctx.Param("id"), req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// SetDisabled godoc
// @Summary 启用/禁用用户（管理员）
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "用户ID"
// @Param   body body service.SetDisabledRequest true "禁用标志"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/users/{id}/disabled [put]
func (c *UserController) SetDisabled(ctx *gin.Context) {
	var req service.SetDisabledRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.SetDisabled(middleware.TenantID(ctx), ctx.Param("id"), req); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
