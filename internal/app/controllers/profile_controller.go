package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/tutorhub/internal/app/models/dto"
	"github.com/emre/tutorhub/internal/app/services"
	"github.com/emre/tutorhub/internal/middleware"
)

// ProfileController handles role selection and entry maintenance
type ProfileController struct {
	profileService *services.ProfileService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService *services.ProfileService) *ProfileController {
	return &ProfileController{profileService: profileService}
}

// ChooseRole godoc
// @Summary Choose a role
// @Description Register as a tutor or a student. The first choice is permanent for regular accounts.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChooseRoleRequest true "Role and entry details"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Role already set"
// @Router /profile/role [post]
func (c *ProfileController) ChooseRole(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.ChooseRoleRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	resp, err := c.profileService.ChooseRole(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdateEntry godoc
// @Summary Update role entry
// @Description Update the caller's tutor or student entry attributes
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateEntryRequest true "Entry fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed or no role chosen"
// @Router /profile/entry [put]
func (c *ProfileController) UpdateEntry(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.UpdateEntryRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	resp, err := c.profileService.UpdateEntry(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetMe godoc
// @Summary Get own account
// @Description Retrieve the caller's account, profile and role entry
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/me [get]
func (c *ProfileController) GetMe(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	resp, err := c.profileService.GetMe(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
