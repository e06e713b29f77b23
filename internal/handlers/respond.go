package handlers

import (
	"net/http"

	"convodesk/internal/dto"
	apperrors "convodesk/internal/errors"

	"github.com/gin-gonic/gin"
)

// respondError maps an error to the envelope using the central taxonomy.
// Engine rejections reach the client with their actionable reason intact.
func respondError(c *gin.Context, err error) {
	c.JSON(apperrors.StatusCode(err), dto.Error(apperrors.ErrorCode(err), err.Error()))
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.Success(data))
}
