package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/studylit/internal/logger"
	"github.com/julianstephens/studylit/internal/notes"
	"github.com/julianstephens/studylit/internal/profile"
	"github.com/julianstephens/studylit/internal/storage"
	"github.com/julianstephens/studylit/internal/study"
	"github.com/julianstephens/studylit/internal/todo"
)

var errInvalidRequestBody = errors.New("invalid request body")

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newUnauthorizedError(message string) apiError {
	return newAPIError(http.StatusUnauthorized, message)
}

// badInput lists the service errors caused by the request itself.
var badInput = []error{
	todo.ErrEmptyTitle, todo.ErrRepeatType,
	study.ErrMinutes, study.ErrDateRange, study.ErrInvalidDate, study.ErrColor, study.ErrTitle,
	notes.ErrKind, notes.ErrTitle, notes.ErrURL, notes.ErrImagePath, notes.ErrQuery,
	profile.ErrRolloverHour, profile.ErrExamDate,
}

// abortWithError maps a service error onto a status code. Unexpected errors
// are logged and reported without detail.
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		abort(c, newAPIError(http.StatusNotFound, "not found"))
		return
	case errors.Is(err, todo.ErrStaleEntry):
		abort(c, newAPIError(http.StatusConflict, err.Error()))
		return
	}
	for _, target := range badInput {
		if errors.Is(err, target) {
			abort(c, newBadRequestError(err.Error()))
			return
		}
	}

	logger.Error("Request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	abort(c, newAPIError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)))
}
