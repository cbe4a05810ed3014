package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/placenet/placement-backend/internal/app/models/dto"
)

// BindJSON binds and validates a JSON request body, writing the standard
// validation error response on failure. Returns false when binding failed
// and the handler should stop.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var detail *dto.ErrorDetail
		if _, ok := err.(validator.ValidationErrors); ok {
			detail = dto.HandleValidationError(err)
		} else {
			detail = dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
				WithDetails(err.Error())
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return false
	}
	return true
}
