package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthRoutes struct {
	server ServerInterface
}

func NewAuthRoutes(server ServerInterface) *AuthRoutes {
	return &AuthRoutes{server: server}
}

func (ar *AuthRoutes) RegisterRoutes(r *gin.Engine) {
	middleware := NewMiddleware(ar.server)

	r.POST("/api/auth/verify", ar.verifyTokenHandler)
	r.GET("/api/auth/user", middleware.AuthMiddleware(), ar.currentUserHandler)
}

// verifyTokenHandler exchanges an identity-provider token for a session
// token plus the user's profile.
func (ar *AuthRoutes) verifyTokenHandler(c *gin.Context) {
	var req struct {
		IDToken string `json:"idToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.IDToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No token provided"})
		return
	}

	authService := ar.server.GetAuth()
	claims, err := authService.VerifyIdentityToken(c.Request.Context(), req.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	sessionToken, err := authService.CreateSessionToken(claims.UID, claims.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Profile lookup failures degrade to a null user rather than failing
	// the exchange.
	user, err := authService.GetUserInfo(c.Request.Context(), claims.UID)
	if err != nil {
		user = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionToken": sessionToken,
		"user":         user,
	})
}

func (ar *AuthRoutes) currentUserHandler(c *gin.Context) {
	claims := currentClaims(c)

	// Profile lookup failures degrade to a null user, same as the verify
	// exchange.
	user, err := ar.server.GetAuth().GetUserInfo(c.Request.Context(), claims.UID)
	if err != nil {
		user = nil
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
