package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/placenet/placement-backend/internal/app/models/dto"
	"github.com/placenet/placement-backend/internal/app/services"
	"github.com/placenet/placement-backend/internal/middleware"
)

// InternshipController handles student internship records
type InternshipController struct {
	internshipService services.InternshipService
}

// NewInternshipController creates a new InternshipController
func NewInternshipController(internshipService services.InternshipService) *InternshipController {
	return &InternshipController{
		internshipService: internshipService,
	}
}

// CreateInternship records an internship for the caller
// @Summary Record an internship
// @Tags internships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateInternshipRequest true "Internship information"
// @Success 201 {object} dto.APIResponse{data=models.Internship} "Internship recorded"
// @Router /internships [post]
func (c *InternshipController) CreateInternship(ctx *gin.Context) {
	var req dto.CreateInternshipRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	internship, err := c.internshipService.Create(ctx, middleware.GetUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(internship, "Internship recorded"))
}

// ListInternships returns the caller's internship records
// @Summary List own internships
// @Tags internships
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Internship} "Internships retrieved"
// @Router /internships [get]
func (c *InternshipController) ListInternships(ctx *gin.Context) {
	internships, err := c.internshipService.ListByStudent(ctx, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(internships, ""))
}

// ListStudentInternships returns one student's internship records for staff review
// @Summary List a student's internships
// @Tags internships
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student user ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Internship} "Internships retrieved"
// @Router /internships/student/{studentId} [get]
func (c *InternshipController) ListStudentInternships(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	internships, err := c.internshipService.ListByStudent(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(internships, ""))
}

// UpdateInternship edits an internship record owned by the caller
// @Summary Update an internship
// @Tags internships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Internship ID"
// @Param request body dto.UpdateInternshipRequest true "Internship information"
// @Success 200 {object} dto.APIResponse{data=models.Internship} "Internship updated"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Internship not found"
// @Router /internships/{id} [put]
func (c *InternshipController) UpdateInternship(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateInternshipRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	internship, err := c.internshipService.Update(ctx, middleware.GetUserID(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(internship, "Internship updated"))
}

// DeleteInternship removes an internship record owned by the caller
// @Summary Delete an internship
// @Tags internships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Internship ID"
// @Success 200 {object} dto.APIResponse "Internship deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Internship not found"
// @Router /internships/{id} [delete]
func (c *InternshipController) DeleteInternship(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.internshipService.Delete(ctx, middleware.GetUserID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Internship deleted"))
}
