package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TenantController struct {
	TenantService *service.TenantService
}

func NewTenantController(tenantService *service.TenantService) *TenantController {
	return &TenantController{TenantService: tenantService}
}

// Create godoc
// @Summary 创建租户（平台管理员）
// @Tags 租户
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreateTenantRequest true "租户信息"
// @Success 201 {object} util.Response{data=model.Tenant}
// @Failure 409 {object} util.Response "子域名已被占用"
// @Router /api/v1/admin/tenants [post]
func (c *TenantController) Create(ctx *gin.Context) {
	var req service.CreateTenantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tenant, err := c.TenantService.Create(req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, tenant)
}

// List godoc
// @Summary 租户列表（平台管理员）
// @Tags 租户
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/v1/admin/tenants [get]
func (c *TenantController) List(ctx *gin.Context) {
	page := util.ParseIntDefault(ctx.Query("page"), 1)
	limit := util.ParseIntDefault(ctx.Query("limit"), 20)

	tenants, total, err := c.TenantService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: tenants, Total: total, Page: page, Limit: limit})
}

// Current godoc
// @Summary 当前租户信息
// @Tags 租户
// @Produce  json
// @Success 200 {object} util.Response{data=model.Tenant}
// @Router /api/v1/tenant [get]
func (c *TenantController) Current(ctx *gin.Context) {
	tenant, exists := ctx.Get("tenant")
	if !exists {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, tenant)
}
