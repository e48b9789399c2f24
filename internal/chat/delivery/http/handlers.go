package http

import (
	"github.com/gin-gonic/gin"

	"school-assistant/internal/middleware"
	"school-assistant/pkg/response"
)

// NewSession godoc
// @Summary     Create a conversation session
// @Description Allocates a fresh session id with empty history.
// @Tags        Chat
// @Produce     json
// @Success     200 {object} newSessionResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat/new-session [POST]
func (h *handler) NewSession(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFromContext(c)

	output, err := h.uc.NewSession(ctx, sc)
	if err != nil {
		h.l.Errorf(ctx, "uc.NewSession: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, newNewSessionResp(output))
}

// Send godoc
// @Summary     Send a message to the assistant
// @Description Runs one conversation turn. When session_id is omitted a new session is created implicitly.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       body body sendReq true "Message"
// @Success     200 {object} sendResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat/send [POST]
func (h *handler) Send(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFromContext(c)

	req, err := h.processSendReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.SendMessage(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.SendMessage: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, newSendResp(output))
}

// ClearSession godoc
// @Summary     Clear a conversation session
// @Description Removes the session and its full history.
// @Tags        Chat
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat/sessions/{id} [DELETE]
func (h *handler) ClearSession(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFromContext(c)

	id := c.Param("id")
	if id == "" {
		response.Error(c, errMissingSessionID, nil)
		return
	}

	if err := h.uc.ClearSession(ctx, sc, id); err != nil {
		h.l.Errorf(ctx, "uc.ClearSession: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, nil)
}
