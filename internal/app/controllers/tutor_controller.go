package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emre/tutorhub/internal/app/models/dto"
	"github.com/emre/tutorhub/internal/app/services"
	"github.com/emre/tutorhub/internal/middleware"
)

// TutorController serves the public tutor directory
type TutorController struct {
	tutorService *services.TutorService
}

// NewTutorController creates a new TutorController
func NewTutorController(tutorService *services.TutorService) *TutorController {
	return &TutorController{tutorService: tutorService}
}

// ListTutors godoc
// @Summary List tutors
// @Description Browse the tutor directory with optional subject and rate filters
// @Tags tutors
// @Produce json
// @Param subject query string false "Filter by subject (substring match)"
// @Param maxRate query string false "Maximum hourly rate"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.APIResponse{data=[]dto.TutorResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /tutors [get]
func (c *TutorController) ListTutors(ctx *gin.Context) {
	var req dto.ListTutorsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid query parameters")))
		return
	}

	tutors, err := c.tutorService.List(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToTutorResponses(tutors)))
}

// GetTutor godoc
// @Summary Get a tutor
// @Description Retrieve a single tutor entry by ID
// @Tags tutors
// @Produce json
// @Param id path int true "Tutor ID"
// @Success 200 {object} dto.APIResponse{data=dto.TutorResponse}
// @Failure 404 {object} dto.ErrorResponse "Tutor not found"
// @Router /tutors/{id} [get]
func (c *TutorController) GetTutor(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid tutor ID")))
		return
	}

	tutor, err := c.tutorService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToTutorResponse(tutor)))
}
