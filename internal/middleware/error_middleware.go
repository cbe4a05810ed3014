package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/placenet/placement-backend/internal/app/models/dto"
	"github.com/placenet/placement-backend/internal/pkg/apperrors"
	"github.com/placenet/placement-backend/internal/pkg/logger"
)

// HandleAPIError maps a service error to its HTTP status and stable error
// code. Every controller routes failures through here so the error
// taxonomy stays uniform across the API.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")))
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")))
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")))

	// Authorization
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(403, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")))
	case errors.Is(err, apperrors.ErrNotApproved):
		c.JSON(403, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeNotApproved, "Account is awaiting administrator approval")))
	case errors.Is(err, apperrors.ErrNotStudent):
		c.JSON(403, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeForbidden, "Operation applies to student accounts only")))

	// Application lifecycle
	case errors.Is(err, apperrors.ErrDuplicateApplication):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeDuplicateApplication, "An application for this job already exists")))
	case errors.Is(err, apperrors.ErrMissingPackage):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeMissingPackage, "A package value is required to mark an application as hired").WithField("package")))
	case errors.Is(err, apperrors.ErrInvalidTransition):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidTransition, "The requested status change is not allowed").WithField("status")))
	case errors.Is(err, apperrors.ErrDeadlinePassed):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeDeadlinePassed, "The application deadline has passed")))
	case errors.Is(err, apperrors.ErrConsistencyConflict):
		c.JSON(500, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeConsistencyConflict, "Applicant status projections disagree").WithSeverity(dto.ErrorSeverityCritical)))

	// Attachments
	case errors.Is(err, apperrors.ErrFileTooLarge):
		c.JSON(413, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeFileTooLarge, "File exceeds the allowed size")))
	case errors.Is(err, apperrors.ErrUnsupportedFileType):
		c.JSON(415, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnsupportedFileType, "File type is not allowed for this attachment")))

	// Notices
	case errors.Is(err, apperrors.ErrInvalidNoticeTarget):
		c.JSON(403, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeForbidden, "Sender role may not address this receiver role")))

	// Missing resources
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrCompanyNotFound),
		errors.Is(err, apperrors.ErrJobNotFound),
		errors.Is(err, apperrors.ErrApplicationNotFound),
		errors.Is(err, apperrors.ErrNoticeNotFound),
		errors.Is(err, apperrors.ErrInternshipNotFound),
		errors.Is(err, apperrors.ErrFileNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(404, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, notFoundMessage(err))))

	// Conflicts
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists")))
	case errors.Is(err, apperrors.ErrResourceAlreadyExists), errors.Is(err, apperrors.ErrConflict):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error())))

	// Bad input
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())))

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		c.JSON(500, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "An internal error occurred")))
	}
}

func notFoundMessage(err error) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return err.Error()
}
