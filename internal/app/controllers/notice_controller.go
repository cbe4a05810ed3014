package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/placenet/placement-backend/internal/app/models/dto"
	"github.com/placenet/placement-backend/internal/app/services"
	"github.com/placenet/placement-backend/internal/middleware"
)

// NoticeController handles notice distribution endpoints
type NoticeController struct {
	noticeService services.NoticeService
}

// NewNoticeController creates a new NoticeController
func NewNoticeController(noticeService services.NoticeService) *NoticeController {
	return &NoticeController{
		noticeService: noticeService,
	}
}

// SendNotice publishes a notice to a role-scoped audience
// @Summary Send a notice
// @Description Publishes a notice. TPOs may address students only; management may address students or TPOs.
// @Tags notices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendNoticeRequest true "Notice content and audience"
// @Success 201 {object} dto.APIResponse{data=dto.NoticeResponse} "Notice published"
// @Failure 403 {object} dto.ErrorResponse "Sender role may not address this receiver role"
// @Router /notices [post]
func (c *NoticeController) SendNotice(ctx *gin.Context) {
	var req dto.SendNoticeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	notice, err := c.noticeService.Send(ctx, middleware.GetUserID(ctx), middleware.GetRole(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(notice, "Notice published"))
}

// ListNotices returns the notices visible to the caller
// @Summary List notices
// @Tags notices
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.NoticeResponse} "Notices retrieved"
// @Router /notices [get]
func (c *NoticeController) ListNotices(ctx *gin.Context) {
	notices, err := c.noticeService.List(ctx, middleware.GetUserID(ctx), middleware.GetRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(notices, ""))
}

// DeleteNotice removes a notice
// @Summary Delete a notice
// @Description Removes a notice. TPOs may delete only notices they authored; management may delete any.
// @Tags notices
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notice ID"
// @Success 200 {object} dto.APIResponse "Notice deleted"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Notice not found"
// @Router /notices/{id} [delete]
func (c *NoticeController) DeleteNotice(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.noticeService.Delete(ctx, middleware.GetUserID(ctx), middleware.GetRole(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Notice deleted"))
}
