package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/planify/internal/application"
	"github.com/oksasatya/planify/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxSessionIDKey = "sessionID"
)

// TokenValidator resolves a bearer token to the identity it was issued for.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (application.Principal, error)
}

// Auth requires an "Authorization: Bearer <token>" header. On success it sets userID and
// sessionID in the Gin context; otherwise the request stops here with 401.
func Auth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "Not authorized, no token", nil)
			return
		}
		p, err := tokens.Validate(c.Request.Context(), token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Not authorized, token failed", nil)
			return
		}
		c.Set(CtxUserIDKey, p.UserID)
		c.Set(CtxSessionIDKey, p.SessionID)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
