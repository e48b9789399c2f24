package http

import (
	"github.com/gin-gonic/gin"

	"school-assistant/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	chat := rg.Group("/chat", mw.Identity())
	{
		chat.POST("/new-session", h.NewSession)
		chat.POST("/send", h.Send)
		chat.DELETE("/sessions/:id", h.ClearSession)
	}
}
