package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"school-assistant/internal/chat"
	"school-assistant/pkg/response"
)

var errMissingSessionID = errors.New("session id is required")

// mapError translates domain errors into HTTP responses.
func (h *handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		response.Error(c, err, nil)
	case errors.Is(err, chat.ErrSessionNotFound):
		response.NotFound(c, err)
	default:
		response.InternalError(c, err)
	}
}
