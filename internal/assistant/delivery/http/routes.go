package http

import (
	"github.com/gin-gonic/gin"

	"smart-assistant/internal/middleware"
)

// RegisterRoutes maps the assistant endpoints under rg. All routes require the API key.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	a := rg.Group("/assistant")
	{
		a.POST("/text", mw.Auth(), h.ProcessText)
		a.POST("/parse", mw.Auth(), h.Parse)
		a.GET("/today", mw.Auth(), h.Today)
	}
}
