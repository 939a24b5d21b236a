package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/emre/tutorhub/internal/app/models/dto"
)

var validate = validator.New()

// BindAndValidate binds the JSON body into obj and runs struct
// validation, writing the error response itself on failure
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(err.Error())
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}

	if err := validate.Struct(obj); err != nil {
		message := "Validation failed"
		var validationErrs validator.ValidationErrors
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			validationErrs = errs
			message = formatValidationError(errs[0])
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
		if len(validationErrs) > 0 {
			errorDetail.WithField(validationErrs[0].Field())
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}

	return true
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
