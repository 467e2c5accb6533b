package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/planify/internal/application"
	"github.com/oksasatya/planify/pkg/response"
	"github.com/oksasatya/planify/pkg/validation"
)

// writeError translates a service error into a status code and error body. Anything outside
// the domain taxonomy is logged and reported as 500 without details.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	var ve *application.ValidationError
	switch {
	case errors.As(err, &ve):
		response.Error(c, http.StatusBadRequest, "Validation failed", map[string]string{ve.Field: ve.Message})
	case errors.Is(err, application.ErrDuplicateEmail):
		response.Error(c, http.StatusBadRequest, "User already exists", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "Invalid credentials", nil)
	case errors.Is(err, application.ErrInvalidToken):
		response.Error(c, http.StatusUnauthorized, "Not authorized, token failed", nil)
	case errors.Is(err, application.ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, "Not authorized", nil)
	case errors.Is(err, application.ErrProjectNotFound):
		response.Error(c, http.StatusNotFound, "Project not found", nil)
	case errors.Is(err, application.ErrTaskNotFound):
		response.Error(c, http.StatusNotFound, "Task not found", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "User not found", nil)
	case errors.Is(err, application.ErrNotFound):
		response.Error(c, http.StatusNotFound, "Not found", nil)
	default:
		if logger != nil {
			logger.WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
				"user_id":    c.GetString("userID"),
			}).WithError(err).Error("unexpected error")
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "Server error", nil)
	}
}

// bindJSON decodes the body into req and writes a 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		badPayload(c, err)
		return false
	}
	return true
}

// bindGuardedJSON is bindJSON for requests on an existing resource. When the body is
// rejected, authorize decides first, so a missing resource stays 404 and a foreign one 401
// whatever was sent.
func bindGuardedJSON(c *gin.Context, logger *logrus.Logger, req any, authorize func() error) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	if gErr := authorize(); gErr != nil {
		writeError(c, logger, gErr)
		return false
	}
	badPayload(c, err)
	return false
}

func badPayload(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}
