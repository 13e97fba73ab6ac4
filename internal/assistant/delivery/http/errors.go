package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"smart-assistant/internal/assistant"
	"smart-assistant/internal/extraction"
	"smart-assistant/pkg/response"
)

var errEmptyText = errors.New("text must not be blank")

// mapError writes the HTTP response for a use-case error.
func (h *handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, assistant.ErrEmptyInput):
		response.Error(c, err, nil)
	case errors.Is(err, assistant.ErrNoCalendar):
		response.ServiceUnavailable(c, err)
	case errors.Is(err, extraction.ErrNoJSON),
		errors.Is(err, extraction.ErrUnsupportedPayload),
		errors.Is(err, extraction.ErrMissingStart),
		errors.Is(err, extraction.ErrInvalidStart):
		response.Unprocessable(c, err.Error(), nil)
	default:
		response.InternalError(c, err)
	}
}
