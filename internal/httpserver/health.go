package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"smart-assistant/pkg/response"
)

const (
	HealthMessage = "Smart assistant is listening"
	HealthVersion = "1.0.0"
	ServiceName   = "smart-assistant"
)

// Component names reported by the health endpoints.
const (
	ComponentCalendar = "calendar"
	ComponentTasks    = "tasks"
	ComponentTelegram = "telegram"
	ComponentEmail    = "email"
)

var errNoBackend = errors.New("neither a calendar nor a task backend is configured")

func (srv HTTPServer) status(state string) gin.H {
	components := make(map[string]bool, len(srv.components))
	for k, v := range srv.components {
		components[k] = v
	}
	return gin.H{
		"status":     state,
		"message":    HealthMessage,
		"version":    HealthVersion,
		"service":    ServiceName,
		"components": components,
	}
}

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy and which backends are wired
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, srv.status("healthy"))
}

// readyCheck is ready once at least one persistence backend is wired.
// @Summary Readiness Check
// @Description Ready when a calendar or task backend can take writes
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Failure 503 {object} response.Resp "No backend configured"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	if !srv.components[ComponentCalendar] && !srv.components[ComponentTasks] {
		response.ServiceUnavailable(c, errNoBackend)
		return
	}
	response.OK(c, srv.status("ready"))
}

// @Summary Liveness Check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, srv.status("alive"))
}
