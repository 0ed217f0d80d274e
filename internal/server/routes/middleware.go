package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"studioflow/internal/auth"
	"studioflow/internal/database"
)

// ServerInterface is what every route group needs from the server.
type ServerInterface interface {
	GetDB() database.Service
	GetAuth() *auth.Service
}

type Middleware struct {
	server ServerInterface
}

func NewMiddleware(server ServerInterface) *Middleware {
	return &Middleware{server: server}
}

// AuthMiddleware requires an `Authorization: Bearer <token>` header. The
// token is checked against the identity provider first and the local session
// signer second; if both fail the request is rejected with 401. The verified
// claims are stored in the context under "user".
func (m *Middleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No authorization header"})
			return
		}

		// The token is the second space-separated field; anything after a
		// further space is ignored.
		parts := strings.Split(header, " ")
		if len(parts) < 2 || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed"})
			return
		}
		token := parts[1]

		authService := m.server.GetAuth()
		claims, err := authService.VerifyIdentityToken(c.Request.Context(), token)
		if err != nil {
			claims, err = authService.VerifySessionToken(token)
		}
		if err != nil || claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// currentClaims returns the authenticated claims set by AuthMiddleware.
func currentClaims(c *gin.Context) *auth.Claims {
	return c.MustGet("user").(*auth.Claims)
}
