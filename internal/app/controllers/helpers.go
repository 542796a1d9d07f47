package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/studyshare/internal/pkg/apperrors"
	"github.com/yigit/studyshare/internal/pkg/helpers"
)

// parseIDParam parses a positive numeric id from the request path
func parseIDParam(ctx *gin.Context, paramName, message string) (int64, error) {
	id, err := helpers.ParseID(ctx.Param(paramName))
	if err != nil {
		return 0, apperrors.NewCustomError(apperrors.ErrInvalidID, message)
	}
	return id, nil
}
