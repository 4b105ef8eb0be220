package controller

import (
	"lms_backend/internal/middleware"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	PaymentService *service.PaymentService
}

func NewPaymentController(paymentService *service.PaymentService) *PaymentController {
	return &PaymentController{PaymentService: paymentService}
}

// Get godoc
// @Summary 支付单详情
// @Tags 支付
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "支付单ID"
// @Success 200 {object} util.Response{data=model.Payment}
// @Router /api/v1/payments/{id} [get]
func (c *PaymentController) Get(ctx *gin.Context) {
	payment, err := c.PaymentService.Get(middleware.TenantID(ctx), ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	claims := util.GetUserFromContext(ctx)
	if payment.UserID != claims.UserID && claims.Role != "admin" {
		util.Forbidden(ctx)
		return
	}
	util.Success(ctx, payment)
}

// ListMine godoc
// @Summary 我的支付记录
// @Tags 支付
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/v1/payments [get]
func (c *PaymentController) ListMine(ctx *gin.Context) {
	page := util.ParseIntDefault(ctx.Query("page"), 1)
	limit := util.ParseIntDefault(ctx.Query("limit"), 20)

	claims := util.GetUserFromContext(ctx)
	payments, total, err := c.PaymentService.ListByUser(claims.TenantID, claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: payments, Total: total, Page: page, Limit: limit})
}

// Confirm godoc
// @Summary 确认支付
// @Description 支付单转completed，对应报名转active。重复确认返回409
// @Tags 支付
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "支付单ID"
// @Param   body body service.ConfirmPaymentRequest true "支付凭据"
// @Success 200 {object} util.Response{data=model.Payment}
// @Failure 409 {object} util.Response "支付单非pending状态"
// @Router /api/v1/payments/{id}/confirm [post]
func (c *PaymentController) Confirm(ctx *gin.Context) {
	var req service.ConfirmPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	payment, err := c.PaymentService.Confirm(ctx.Request.Context(), claims.TenantID, claims.UserID, ctx.Param("id"), req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, payment)
}

// Cancel godoc
// @Summary 取消支付
// @Description 未完成的支付单转failed，报名保持pending可重新发起支付
// @Tags 支付
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "支付单ID"
// @Success 200 {object} util.Response{data=model.Payment}
// @Failure 409 {object} util.Response "支付单非pending状态"
// @Router /api/v1/payments/{id}/cancel [post]
func (c *PaymentController) Cancel(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	payment, err := c.PaymentService.Get(claims.TenantID, ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	if payment.UserID != claims.UserID && claims.Role != "admin" {
		util.Forbidden(ctx)
		return
	}

	payment, err = c.PaymentService.Fail(claims.TenantID, ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, payment)
}

// Refund godoc
// @Summary 退款（管理员）
// @Description 支付单转refunded，报名同步退出
// @Tags 支付
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "支付单ID"
// @Param   body body service.RefundRequest true "退款信息"
// @Success 200 {object} util.Response{data=model.Payment}
// @Router /api/v1/payments/{id}/refund [post]
func (c *PaymentController) Refund(ctx *gin.Context) {
	var req service.RefundRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	payment, err := c.PaymentService.Refund(ctx.Request.Context(), middleware.TenantID(ctx), ctx.Param("id"), req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, payment)
}
