package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studioflow/internal/auth"
)

type UserRoutes struct {
	server ServerInterface
}

func NewUserRoutes(server ServerInterface) *UserRoutes {
	return &UserRoutes{server: server}
}

func (ur *UserRoutes) RegisterRoutes(r *gin.Engine) {
	middleware := NewMiddleware(ur.server)

	r.POST("/api/user/profile", middleware.AuthMiddleware(), ur.updateProfileHandler)
	r.POST("/api/user/password", middleware.AuthMiddleware(), ur.updatePasswordHandler)
}

// updateProfileHandler updates the allow-listed profile fields. Fields the
// client omits are untouched; fields outside the schema are dropped at
// binding.
func (ur *UserRoutes) updateProfileHandler(c *gin.Context) {
	claims := currentClaims(c)

	var req struct {
		DisplayName *string `json:"displayName"`
		PhotoURL    *string `json:"photoURL"`
		Email       *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := auth.UserUpdate{
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
		Email:       req.Email,
	}
	user, err := ur.server.GetAuth().UpdateUser(c.Request.Context(), claims.UID, update)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (ur *UserRoutes) updatePasswordHandler(c *gin.Context) {
	claims := currentClaims(c)

	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters"})
		return
	}

	update := auth.UserUpdate{Password: &req.Password}
	if _, err := ur.server.GetAuth().UpdateUser(c.Request.Context(), claims.UID, update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
