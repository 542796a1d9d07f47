package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/studyshare/internal/app/models/dto"
	"github.com/yigit/studyshare/internal/pkg/apperrors"
)

// HandleAPIError maps a service error to its status code and writes the
// standard error envelope. CustomError messages are shown to the client;
// bare sentinels fall back to a fixed message per class.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := classifyError(err)

	if status >= http.StatusInternalServerError {
		logFrom(c).Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

// HandleValidationError writes a 400 for a request body that failed binding
func HandleValidationError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}

func classifyError(err error) (int, *dto.ErrorDetail) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidID):
		return http.StatusBadRequest,
			dto.NewErrorDetail(dto.ErrorCodeInvalidID, apperrors.UserMessage(err, "Invalid ID"))

	case apperrors.Is(err, apperrors.ErrFileRequired, apperrors.ErrFileTooLarge, apperrors.ErrFileTypeNotAllow):
		return http.StatusBadRequest,
			dto.NewErrorDetail(dto.ErrorCodeFileRejected, apperrors.UserMessage(err, "Invalid file")).
				WithSeverity(dto.ErrorSeverityWarning)

	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		return http.StatusBadRequest,
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, apperrors.UserMessage(err, "Validation failed")).
				WithSeverity(dto.ErrorSeverityWarning)

	// Duplicate username/email is reported as a plain bad request
	case apperrors.Is(err, apperrors.ErrConflict, apperrors.ErrUsernameAlreadyExists, apperrors.ErrEmailAlreadyExists):
		return http.StatusBadRequest,
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, apperrors.UserMessage(err, "Resource already exists"))

	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound, apperrors.ErrCategoryNotFound, apperrors.ErrNoteNotFound,
		apperrors.ErrFileNotFound, apperrors.ErrRatingNotFound):
		return http.StatusNotFound,
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, apperrors.UserMessage(err, "Resource not found"))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized,
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, apperrors.UserMessage(err, "Invalid username or password"))

	case errors.Is(err, apperrors.ErrSessionExpired):
		return http.StatusUnauthorized,
			dto.NewErrorDetail(dto.ErrorCodeSessionExpired, "Unauthorized")

	case apperrors.Is(err, apperrors.ErrUnauthorized, apperrors.ErrSessionNotFound, apperrors.ErrSessionInvalid):
		return http.StatusUnauthorized,
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Unauthorized")

	case errors.Is(err, apperrors.ErrFileWrite):
		return http.StatusInternalServerError,
			dto.NewErrorDetail(dto.ErrorCodeStorageError, "Failed to store file").
				WithSeverity(dto.ErrorSeverityCritical)

	default:
		return http.StatusInternalServerError,
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Server error").
				WithSeverity(dto.ErrorSeverityCritical)
	}
}

// logFrom returns the request logger stored by RequestLogger, or a no-op logger.
func logFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(zerolog.Logger); ok {
			return &l
		}
	}
	nop := zerolog.Nop()
	return &nop
}
