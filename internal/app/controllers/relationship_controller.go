package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emre/tutorhub/internal/app/models/dto"
	"github.com/emre/tutorhub/internal/app/services"
	"github.com/emre/tutorhub/internal/middleware"
)

// RelationshipController handles the pairing lifecycle endpoints
type RelationshipController struct {
	relationshipService *services.RelationshipService
}

// NewRelationshipController creates a new RelationshipController
func NewRelationshipController(relationshipService *services.RelationshipService) *RelationshipController {
	return &RelationshipController{relationshipService: relationshipService}
}

// RequestTutor godoc
// @Summary Request a tutor
// @Description Create a pending pairing with a tutor. Students only. Repeating the request returns the existing pairing unchanged.
// @Tags relationships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tutor ID"
// @Success 200 {object} dto.APIResponse{data=dto.RelationshipResponse} "Pairing already existed"
// @Success 201 {object} dto.APIResponse{data=dto.RelationshipResponse} "Pairing created"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a student"
// @Failure 404 {object} dto.ErrorResponse "Tutor not found"
// @Router /tutors/{id}/request [post]
func (c *RelationshipController) RequestTutor(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	tutorID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid tutor ID")))
		return
	}

	rel, created, err := c.relationshipService.RequestTutor(ctx, userID, tutorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.NewSuccessResponse(dto.ToRelationshipResponse(rel)))
}

// ConfirmStudent godoc
// @Summary Confirm a student
// @Description Activate the pairing with a student. Tutors only. Confirming an active pairing is a no-op; confirming without a prior request creates it active.
// @Tags relationships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.RelationshipResponse}
// @Failure 403 {object} dto.ErrorResponse "Caller is not a tutor"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/confirm [post]
func (c *RelationshipController) ConfirmStudent(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	studentID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid student ID")))
		return
	}

	rel, err := c.relationshipService.ConfirmStudent(ctx, userID, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToRelationshipResponse(rel)))
}

// RemoveStudent godoc
// @Summary Remove a student
// @Description Delete the pairing with a student, pending or active. Tutors only.
// @Tags relationships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Caller is not a tutor"
// @Failure 404 {object} dto.ErrorResponse "No pairing with this student"
// @Router /students/{id}/relationship [delete]
func (c *RelationshipController) RemoveStudent(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	studentID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid student ID")))
		return
	}

	if err := c.relationshipService.RemoveStudent(ctx, userID, studentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "relationship removed"}))
}

// ListRelationships godoc
// @Summary List pairings
// @Description List the caller's pairings, active first then by tutor username
// @Tags relationships
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.RelationshipResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /relationships [get]
func (c *RelationshipController) ListRelationships(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	relationships, err := c.relationshipService.ListForUser(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToRelationshipResponses(relationships)))
}
