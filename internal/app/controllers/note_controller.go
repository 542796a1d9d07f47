package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/studyshare/internal/app/models/dto"
	"github.com/yigit/studyshare/internal/app/services"
	"github.com/yigit/studyshare/internal/middleware"
	"github.com/yigit/studyshare/internal/pkg/apperrors"
)

// NoteController handles note related requests
type NoteController struct {
	noteService services.NoteService
	logger      zerolog.Logger
}

// NewNoteController creates a new NoteController
func NewNoteController(noteService services.NoteService, logger zerolog.Logger) *NoteController {
	return &NoteController{
		noteService: noteService,
		logger:      logger,
	}
}

// GetNotes godoc
// @Summary List notes
// @Tags notes
// @Produce json
// @Success 200 {array} models.Note
// @Router /notes [get]
func (c *NoteController) GetNotes(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.noteService.GetNotes(ctx.Request.Context()))
}

// GetNotesByCategory godoc
// @Summary List notes of a category
// @Tags notes
// @Produce json
// @Param categoryId path int true "Category ID"
// @Success 200 {array} models.Note
// @Failure 400 {object} dto.ErrorResponse "Invalid category ID"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Router /notes/category/{categoryId} [get]
func (c *NoteController) GetNotesByCategory(ctx *gin.Context) {
	categoryID, err := parseIDParam(ctx, "categoryId", "Invalid category ID")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	notes, err := c.noteService.GetNotesByCategory(ctx.Request.Context(), categoryID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, notes)
}

// GetNotesByUser godoc
// @Summary List notes uploaded by a user
// @Tags notes
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {array} models.Note
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /notes/user/{userId} [get]
func (c *NoteController) GetNotesByUser(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "userId", "Invalid user ID")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	notes, err := c.noteService.GetNotesByUser(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, notes)
}

// GetNote godoc
// @Summary Get a note
// @Description Returns the note and counts the view
// @Tags notes
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} models.Note
// @Failure 400 {object} dto.ErrorResponse "Invalid note ID"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Router /notes/{id} [get]
func (c *NoteController) GetNote(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id", "Invalid note ID")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	note, err := c.noteService.ViewNote(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, note)
}

// CreateNote godoc
// @Summary Upload a note
// @Tags notes
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param categoryId formData int true "Category ID"
// @Param file formData file true "PDF, Word or PowerPoint document"
// @Success 201 {object} models.Note
// @Failure 400 {object} dto.ErrorResponse "Invalid form, file type or size"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "File could not be stored"
// @Router /notes [post]
func (c *NoteController) CreateNote(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrFileTooLarge, "File too large"))
			return
		case errors.Is(err, http.ErrMissingFile):
			file = nil
		default:
			middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid multipart form"))
			return
		}
	}

	var req dto.CreateNoteRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	note, err := c.noteService.CreateNote(ctx.Request.Context(), userID, &req, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, note)
}

// DownloadNote godoc
// @Summary Download a note file
// @Description Streams the stored file and counts the download
// @Tags notes
// @Produce octet-stream
// @Param id path int true "Note ID"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse "Invalid note ID"
// @Failure 404 {object} dto.ErrorResponse "Note or file not found"
// @Router /notes/{id}/download [get]
func (c *NoteController) DownloadNote(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id", "Invalid note ID")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	download, err := c.noteService.DownloadNote(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Debug().
		Int64("noteId", download.Note.ID).
		Int64("downloads", download.Note.Downloads).
		Msg("Serving note file")
	ctx.FileAttachment(download.FilePath, download.Note.FileName)
}
