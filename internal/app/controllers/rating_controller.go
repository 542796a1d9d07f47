package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/studyshare/internal/app/models/dto"
	"github.com/yigit/studyshare/internal/app/services"
	"github.com/yigit/studyshare/internal/middleware"
	"github.com/yigit/studyshare/internal/pkg/apperrors"
)

// RatingController handles rating related requests
type RatingController struct {
	ratingService services.RatingService
}

// NewRatingController creates a new RatingController
func NewRatingController(ratingService services.RatingService) *RatingController {
	return &RatingController{ratingService: ratingService}
}

// GetRatings godoc
// @Summary List ratings of a note
// @Tags ratings
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {array} models.Rating
// @Failure 400 {object} dto.ErrorResponse "Invalid note ID"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Router /notes/{id}/ratings [get]
func (c *RatingController) GetRatings(ctx *gin.Context) {
	noteID, err := parseIDParam(ctx, "id", "Invalid note ID")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ratings, err := c.ratingService.GetRatings(ctx.Request.Context(), noteID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, ratings)
}

// RateNote godoc
// @Summary Rate a note
// @Description Creates the caller's rating or replaces the previous one
// @Tags ratings
// @Accept json
// @Produce json
// @Param id path int true "Note ID"
// @Param request body dto.RateNoteRequest true "Rating"
// @Success 201 {object} models.Rating
// @Failure 400 {object} dto.ErrorResponse "Invalid note ID or rating"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Router /notes/{id}/rate [post]
func (c *RatingController) RateNote(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	noteID, err := parseIDParam(ctx, "id", "Invalid note ID")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.ratingService.EnsureNote(ctx.Request.Context(), noteID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.RateNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	rating, err := c.ratingService.RateNote(ctx.Request.Context(), userID, noteID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, rating)
}

// GetMyRating godoc
// @Summary Get the caller's rating of a note
// @Tags ratings
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} models.Rating
// @Failure 400 {object} dto.ErrorResponse "Invalid note ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Note or rating not found"
// @Router /notes/{id}/myrating [get]
func (c *RatingController) GetMyRating(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	noteID, err := parseIDParam(ctx, "id", "Invalid note ID")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	rating, err := c.ratingService.GetMyRating(ctx.Request.Context(), userID, noteID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, rating)
}
