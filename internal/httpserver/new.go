package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	assistantHTTP "smart-assistant/internal/assistant/delivery/http"
	tgDelivery "smart-assistant/internal/assistant/delivery/telegram"
	"smart-assistant/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	apiKey      string
	components  map[string]bool

	// Assistant domain
	telegramHandler  tgDelivery.Handler
	assistantHandler assistantHTTP.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string
	// APIKey guards /api/v1. Empty leaves it open.
	APIKey string
	// Components reports which backends are wired, keyed by the Component* names.
	Components map[string]bool

	// Optional handlers; nil skips their routes.
	TelegramHandler  tgDelivery.Handler
	AssistantHandler assistantHTTP.Handler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:                logger,
		gin:              gin.New(),
		port:             cfg.Port,
		mode:             cfg.Mode,
		environment:      cfg.Environment,
		apiKey:           cfg.APIKey,
		components:       cfg.Components,
		telegramHandler:  cfg.TelegramHandler,
		assistantHandler: cfg.AssistantHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}
