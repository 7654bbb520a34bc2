package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"calendar-be/internal/middleware"
	"calendar-be/internal/models"
	"calendar-be/internal/service"
)

// Request bodies must match the endpoint's struct exactly
func init() {
	binding.EnableDecoderDisallowUnknownFields = true
}

// statusFor maps a service error kind to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrFormat),
		errors.Is(err, service.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"msg": ...}. Unexpected errors become a
// generic 500 and their detail only reaches the log.
func respondError(c *gin.Context, err error) {
	logger := zerolog.Ctx(c.Request.Context())
	status := statusFor(err)

	if status == http.StatusInternalServerError {
		logger.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		c.JSON(status, models.MessageResponse{Msg: "Internal server error"})
		return
	}

	msg := http.StatusText(status)
	var appErr *service.Error
	if errors.As(err, &appErr) {
		msg = appErr.Msg
	}

	logger.Debug().Int("status", status).Str("msg", msg).Msg("request rejected")
	c.JSON(status, models.MessageResponse{Msg: msg})
}

// bindJSON decodes the body strictly; malformed JSON and unknown fields are
// rejected here, required fields are checked by the service.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		zerolog.Ctx(c.Request.Context()).Debug().Err(err).Msg("invalid request body")
		c.JSON(http.StatusBadRequest, models.MessageResponse{Msg: service.MsgInvalidRequestBody})
		return false
	}
	return true
}

// currentUser returns the identity set by the auth middleware
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.MessageResponse{Msg: "Missing Authorization Header"})
		return uuid.Nil, false
	}
	return userID, true
}

// eventIDParam parses the :id path segment. An id that is not a UUID can
// never name an event, so it is reported as not found.
func eventIDParam(c *gin.Context) (uuid.UUID, bool) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.MessageResponse{Msg: service.MsgEventNotFound})
		return uuid.Nil, false
	}
	return eventID, true
}
