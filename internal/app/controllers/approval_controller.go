package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/placenet/placement-backend/internal/app/models/dto"
	"github.com/placenet/placement-backend/internal/app/services"
	"github.com/placenet/placement-backend/internal/middleware"
)

// ApprovalController handles the student approval queue
type ApprovalController struct {
	approvalService services.ApprovalService
	authService     services.AuthService
}

// NewApprovalController creates a new ApprovalController
func NewApprovalController(approvalService services.ApprovalService, authService services.AuthService) *ApprovalController {
	return &ApprovalController{
		approvalService: approvalService,
		authService:     authService,
	}
}

// ListPending returns students awaiting approval
// @Summary List pending students
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.PendingStudentResponse} "Pending students"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /admin/pending-students [get]
func (c *ApprovalController) ListPending(ctx *gin.Context) {
	students, err := c.approvalService.ListPending(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(students, ""))
}

// ApproveStudent approves a pending student account
// @Summary Approve a student
// @Description Flips the approval flag for a student. Approving an already approved student is a no-op success.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ApprovalRequest true "Student email"
// @Success 200 {object} dto.APIResponse "Student approved"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /admin/approve-student [post]
func (c *ApprovalController) ApproveStudent(ctx *gin.Context) {
	var req dto.ApprovalRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.approvalService.Approve(ctx, req.Email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Student approved"))
}

// RejectStudent removes a pending student account
// @Summary Reject a student registration
// @Description Deletes an unapproved student account outright. Irreversible.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ApprovalRequest true "Student email"
// @Success 200 {object} dto.APIResponse "Student rejected"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /admin/reject-student [post]
func (c *ApprovalController) RejectStudent(ctx *gin.Context) {
	var req dto.ApprovalRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.approvalService.Reject(ctx, req.Email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Student registration rejected"))
}

// CreateStaffUser creates a TPO or management administrator account
// @Summary Create a staff account
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserRequest true "Staff account information"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse} "Account created"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /admin/users [post]
func (c *ApprovalController) CreateStaffUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.authService.CreateStaffUser(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(user, "Staff account created"))
}
