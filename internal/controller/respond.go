package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/minhanle/classhub/internal/apperr"
	"github.com/minhanle/classhub/internal/dto"
	"github.com/minhanle/classhub/internal/middleware"
	"github.com/rs/zerolog/log"
)

// WriteError maps a service error to an HTTP status and JSON body. Unknown
// errors are logged and hidden behind a generic 500.
func WriteError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled service error")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Kind {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindUnauthorized:
		status = http.StatusUnauthorized
	case apperr.KindForbidden, apperr.KindNotEnrolled:
		status = http.StatusForbidden
	case apperr.KindAlreadyExists:
		status = http.StatusConflict
	case apperr.KindInvalid, apperr.KindNotStarted, apperr.KindEnded,
		apperr.KindExamClosed, apperr.KindAlreadySubmitted:
		status = http.StatusBadRequest
	}
	c.JSON(status, dto.ErrorResponse{Message: appErr.Message})
}

func BindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body", Details: []string{err.Error()}})
}

// Pagination parses page and limit query params with sane bounds.
func Pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func UserID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserID)
}

func Role(c *gin.Context) string {
	return c.GetString(middleware.ContextRole)
}
