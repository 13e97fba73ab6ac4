package http

import (
	"github.com/gin-gonic/gin"
)

// processTextReq binds and validates the text request body.
func (h *handler) processTextReq(c *gin.Context) (textReq, error) {
	var req textReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// processTodayReq binds the today query parameters.
func (h *handler) processTodayReq(c *gin.Context) (todayReq, error) {
	var req todayReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	return req, nil
}
