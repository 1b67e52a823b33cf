package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"guardians/training-tracker/internal/service"
)

// respondError maps service errors onto status codes. Unexpected errors are
// logged and reported as a generic 500 with fallback as the message.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPayloadTooLarge):
		abortWithError(c, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, service.ErrUserAlreadyExists):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrAuthenticationFailed):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	default:
		entry := log.WithError(err).WithField("path", c.Request.URL.Path)
		if userID, idErr := getUserIDFromContext(c); idErr == nil {
			entry = entry.WithField("userId", userID)
		}
		entry.Error(fallback)
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
