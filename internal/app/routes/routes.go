package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/placenet/placement-backend/internal/app/controllers"
	"github.com/placenet/placement-backend/internal/app/models"
	"github.com/placenet/placement-backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	approvalController *controllers.ApprovalController,
	companyController *controllers.CompanyController,
	jobController *controllers.JobController,
	applicationController *controllers.ApplicationController,
	noticeController *controllers.NoticeController,
	internshipController *controllers.InternshipController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	// Everything below requires a resolved identity
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Own profile
		users := authenticated.Group("/users")
		{
			users.GET("/me", userController.GetMe)
			users.PUT("/me", userController.UpdateProfile)
			users.POST("/me/photo", userController.UploadProfilePhoto)
			users.DELETE("/me/photo", userController.DeleteProfilePhoto)
			users.POST("/me/resume", userController.UploadResume)
			users.DELETE("/me/resume", userController.DeleteResume)
		}

		// Catalog reads are open to all authenticated users
		companies := authenticated.Group("/companies")
		{
			companies.GET("", companyController.GetAllCompanies)
			companies.GET("/:id", companyController.GetCompany)

			companiesStaff := companies.Group("")
			companiesStaff.Use(authMiddleware.StaffRequired())
			{
				companiesStaff.POST("", companyController.CreateCompany)
				companiesStaff.PUT("/:id", companyController.UpdateCompany)
				companiesStaff.DELETE("/:id", companyController.DeleteCompany)
			}
		}

		jobs := authenticated.Group("/jobs")
		{
			jobs.GET("", jobController.GetAllJobs)
			jobs.GET("/:id", jobController.GetJob)

			jobsStaff := jobs.Group("")
			jobsStaff.Use(authMiddleware.StaffRequired())
			{
				jobsStaff.POST("", jobController.CreateJob)
				jobsStaff.PUT("/:id", jobController.UpdateJob)
				jobsStaff.DELETE("/:id", jobController.DeleteJob)
				jobsStaff.GET("/:id/applicants", applicationController.ListApplicants)
			}
		}

		// Application lifecycle
		applications := authenticated.Group("/applications")
		{
			// Students apply and review their own applications; the apply
			// route additionally requires an approved account
			applicationsStudent := applications.Group("")
			applicationsStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				applicationsStudent.GET("/mine", applicationController.ListAppliedJobs)

				applicationsApproved := applicationsStudent.Group("")
				applicationsApproved.Use(authMiddleware.ApprovalRequired())
				{
					applicationsApproved.POST("/apply", applicationController.Apply)
				}
			}

			// Outcome mutations belong to placement staff
			applicationsStaff := applications.Group("")
			applicationsStaff.Use(authMiddleware.StaffRequired())
			{
				applicationsStaff.POST("/update-status", applicationController.UpdateStatus)
				applicationsStaff.POST("/offer-letter", applicationController.UploadOfferLetter)
				applicationsStaff.POST("/delete-offer-letter", applicationController.DeleteOfferLetter)
			}
		}

		// Notices
		notices := authenticated.Group("/notices")
		{
			notices.GET("", noticeController.ListNotices)

			noticesStaff := notices.Group("")
			noticesStaff.Use(authMiddleware.StaffRequired())
			{
				noticesStaff.POST("", noticeController.SendNotice)
				noticesStaff.DELETE("/:id", noticeController.DeleteNotice)
			}
		}

		// Internships are student-owned records; staff may review them
		internships := authenticated.Group("/internships")
		{
			internshipsStudent := internships.Group("")
			internshipsStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				internshipsStudent.POST("", internshipController.CreateInternship)
				internshipsStudent.GET("", internshipController.ListInternships)
				internshipsStudent.PUT("/:id", internshipController.UpdateInternship)
				internshipsStudent.DELETE("/:id", internshipController.DeleteInternship)
			}

			internshipsStaff := internships.Group("")
			internshipsStaff.Use(authMiddleware.StaffRequired())
			{
				internshipsStaff.GET("/student/:studentId", internshipController.ListStudentInternships)
			}
		}

		// Administration
		admin := authenticated.Group("/admin")
		{
			adminApprovers := admin.Group("")
			adminApprovers.Use(authMiddleware.RoleRequired(models.RoleManagementAdmin, models.RoleSuperuser))
			{
				adminApprovers.GET("/pending-students", approvalController.ListPending)
				adminApprovers.POST("/approve-student", approvalController.ApproveStudent)
				adminApprovers.POST("/reject-student", approvalController.RejectStudent)
				adminApprovers.GET("/consistency-check", applicationController.CheckConsistency)
			}

			adminSuperuser := admin.Group("")
			adminSuperuser.Use(authMiddleware.RoleRequired(models.RoleSuperuser))
			{
				adminSuperuser.POST("/users", approvalController.CreateStaffUser)
			}
		}
	}
}
