package http

import (
	"github.com/gin-gonic/gin"

	"smart-assistant/internal/assistant"
	"smart-assistant/pkg/log"
)

// Handler is the REST delivery of the assistant.
type Handler interface {
	ProcessText(c *gin.Context)
	Parse(c *gin.Context)
	Today(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc assistant.UseCase
}

// New creates a new HTTP handler for the assistant domain.
func New(l log.Logger, uc assistant.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
