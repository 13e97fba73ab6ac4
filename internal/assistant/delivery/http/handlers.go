package http

import (
	"github.com/gin-gonic/gin"

	"smart-assistant/pkg/response"
)

// ProcessText godoc
// @Summary     Add events and tasks from text
// @Description Extracts calendar events and tasks from free-form text and writes them to the configured backends.
// @Tags        Assistant
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       body body textReq true "Message"
// @Success     200  {object} resultResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     401  {object} response.Resp "Unauthorized"
// @Failure     422  {object} response.Resp "Nothing could be created"
// @Router      /api/v1/assistant/text [POST]
func (h *handler) ProcessText(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processTextReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	result := h.uc.ProcessText(ctx, req.scope(), req.toInput())
	resp := h.newResultResp(result)
	if !result.Success {
		h.l.Warnf(ctx, "http.ProcessText: %s", result.Message)
		response.Unprocessable(c, result.Message, resp)
		return
	}

	response.OK(c, resp)
}

// Parse godoc
// @Summary     Preview extraction
// @Description Runs extraction, coloring and list reconciliation on the text without writing anything.
// @Tags        Assistant
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       body body textReq true "Message"
// @Success     200  {object} parseResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     401  {object} response.Resp "Unauthorized"
// @Failure     422  {object} response.Resp "Model output could not be parsed"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/assistant/parse [POST]
func (h *handler) Parse(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processTextReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	items, err := h.uc.PreviewText(ctx, req.scope(), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.PreviewText: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newParseResp(items))
}

// Today godoc
// @Summary     Today's events
// @Description Lists the calendar events of the current day in the configured timezone.
// @Tags        Assistant
// @Produce     json
// @Security    ApiKeyAuth
// @Param       user_id query string false "Caller id recorded in logs"
// @Success     200 {object} todayResp
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     503 {object} response.Resp "No calendar backend configured"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/assistant/today [GET]
func (h *handler) Today(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processTodayReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.ListToday(ctx, req.scope())
	if err != nil {
		h.l.Errorf(ctx, "uc.ListToday: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newTodayResp(out))
}
