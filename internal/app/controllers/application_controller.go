package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/placenet/placement-backend/internal/app/models/dto"
	"github.com/placenet/placement-backend/internal/app/services"
	"github.com/placenet/placement-backend/internal/middleware"
)

// ApplicationController handles the application lifecycle endpoints
type ApplicationController struct {
	applicationService services.ApplicationService
	attachmentService  services.AttachmentService
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(
	applicationService services.ApplicationService,
	attachmentService services.AttachmentService,
) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
		attachmentService:  attachmentService,
	}
}

// Apply records the caller's application to a job
// @Summary Apply to a job
// @Description Creates an application for the authenticated student. Fails if the student is unapproved, the deadline has passed, or an application already exists.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ApplyRequest true "Job to apply to"
// @Success 201 {object} dto.APIResponse{data=dto.AppliedJobResponse} "Application created"
// @Failure 403 {object} dto.ErrorResponse "Not approved"
// @Failure 409 {object} dto.ErrorResponse "Duplicate application"
// @Router /applications/apply [post]
func (c *ApplicationController) Apply(ctx *gin.Context) {
	var req dto.ApplyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	applied, err := c.applicationService.Apply(ctx, middleware.GetUserID(ctx), req.JobID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(applied, "Application submitted"))
}

// UpdateStatus patches an application's status and round fields
// @Summary Update application status
// @Description Moves an application through the state machine. Restricted to placement staff; marking HIRED requires a package value.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateApplicationStatusRequest true "Status patch"
// @Success 200 {object} dto.APIResponse{data=dto.AppliedJobResponse} "Application updated"
// @Failure 400 {object} dto.ErrorResponse "Missing package or invalid transition"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/update-status [post]
func (c *ApplicationController) UpdateStatus(ctx *gin.Context) {
	var req dto.UpdateApplicationStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	updated, err := c.applicationService.UpdateStatus(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(updated, "Application updated"))
}

// ListApplicants returns the applicant list of a job
// @Summary List applicants for a job
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicantResponse} "Applicants retrieved"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /jobs/{id}/applicants [get]
func (c *ApplicationController) ListApplicants(ctx *gin.Context) {
	// The route nests under the /jobs/:id wildcard shared with the other
	// job routes, so the param name is "id"
	jobID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	applicants, err := c.applicationService.ListApplicants(ctx, jobID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(applicants, ""))
}

// ListAppliedJobs returns the caller's applications
// @Summary List own applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AppliedJobResponse} "Applications retrieved"
// @Router /applications/mine [get]
func (c *ApplicationController) ListAppliedJobs(ctx *gin.Context) {
	applied, err := c.applicationService.ListAppliedJobs(ctx, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(applied, ""))
}

// UploadOfferLetter attaches an offer letter to an application
// @Summary Upload offer letter
// @Tags applications
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param studentId formData int true "Student ID"
// @Param jobId formData int true "Job ID"
// @Param file formData file true "PDF, DOC or DOCX document"
// @Success 200 {object} dto.APIResponse{data=dto.FileResponse} "Offer letter uploaded"
// @Failure 413 {object} dto.ErrorResponse "File too large"
// @Failure 415 {object} dto.ErrorResponse "Unsupported file type"
// @Router /applications/offer-letter [post]
func (c *ApplicationController) UploadOfferLetter(ctx *gin.Context) {
	studentID, jobID, ok := parseApplicationForm(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A file is required").WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	file, err := c.attachmentService.AttachOfferLetter(ctx, studentID, jobID, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(file, "Offer letter uploaded"))
}

// DeleteOfferLetter removes an application's offer letter
// @Summary Delete offer letter
// @Description Removes the stored offer letter and clears the application's reference in one transaction. Deleting when none is attached succeeds.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.OfferLetterRequest true "Application identifier"
// @Success 200 {object} dto.APIResponse "Offer letter deleted"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/delete-offer-letter [post]
func (c *ApplicationController) DeleteOfferLetter(ctx *gin.Context) {
	var req dto.OfferLetterRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.attachmentService.DetachOfferLetter(ctx, req.StudentID, req.JobID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Offer letter deleted"))
}

// CheckConsistency runs the projection consistency check
// @Summary Check projection consistency
// @Description Compares the job-side and student-side application projections and reports any divergent pairs
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ConsistencyReport} "Consistency report"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /admin/consistency-check [get]
func (c *ApplicationController) CheckConsistency(ctx *gin.Context) {
	report, err := c.applicationService.CheckConsistency(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(report, ""))
}

func parseApplicationForm(ctx *gin.Context) (studentID, jobID int64, ok bool) {
	var form struct {
		StudentID int64 `form:"studentId" binding:"required,min=1"`
		JobID     int64 `form:"jobId" binding:"required,min=1"`
	}
	if err := ctx.ShouldBind(&form); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return 0, 0, false
	}
	return form.StudentID, form.JobID, true
}
