package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"school-assistant/internal/model"
)

const scopeKey = "x-request-scope"

// Identity extracts the acting user's identity from request headers and
// stashes it as a model.Scope in the gin context. All chat routes run
// behind it; requests without identity still pass through with an
// anonymous scope, since the assistant itself decides what needs
// credentials.
func (m Middleware) Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		sc := model.Scope{
			UserID:   c.GetHeader("X-User-ID"),
			Username: c.GetHeader("X-Username"),
		}

		auth := c.GetHeader("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			sc.AuthToken = strings.TrimPrefix(auth, "Bearer ")
		}

		c.Set(scopeKey, sc)
		c.Next()
	}
}

// ScopeFromContext returns the scope installed by Identity.
func ScopeFromContext(c *gin.Context) model.Scope {
	if v, ok := c.Get(scopeKey); ok {
		if sc, ok := v.(model.Scope); ok {
			return sc
		}
	}
	return model.Scope{}
}
