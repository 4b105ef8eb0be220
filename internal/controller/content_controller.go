package controller

import (
	"lms_backend/internal/middleware"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// UploadVideo godoc
// @Summary 上传课时视频
// @Description 上传后探测视频时长并回填课时
// @Tags 内容
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课时ID"
// @Param   file formData file true "视频文件"
// @Success 200 {object} util.Response{data=service.UploadVideoResult}
// @Failure 415 {object} util.Response "不支持的文件类型"
// @Router /api/v1/lessons/{id}/video [post]
func (c *ContentController) UploadVideo(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	result, err := c.ContentService.UploadLessonVideo(ctx.Request.Context(), middleware.TenantID(ctx), ctx.Param("id"), file)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// UploadThumbnail godoc
// @Summary 上传课程封面
// @Tags 内容
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课程ID"
// @Param   file formData file true "图片文件"
// @Success 200 {object} util.Response
// @Failure 415 {object} util.Response "不支持的文件类型"
// @Router /api/v1/courses/{id}/thumbnail [post]
func (c *ContentController) UploadThumbnail(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	url, err := c.ContentService.UploadCourseThumbnail(ctx.Request.Context(), middleware.TenantID(ctx), ctx.Param("id"), file)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}
