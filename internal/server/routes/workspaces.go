package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type WorkspaceRoutes struct {
	server ServerInterface
}

func NewWorkspaceRoutes(server ServerInterface) *WorkspaceRoutes {
	return &WorkspaceRoutes{server: server}
}

func (wr *WorkspaceRoutes) RegisterRoutes(r *gin.Engine) {
	middleware := NewMiddleware(wr.server)

	r.GET("/api/workspace/:id", middleware.AuthMiddleware(), wr.getWorkspaceHandler)
	r.POST("/api/workspaces/create", middleware.AuthMiddleware(), wr.createWorkspaceHandler)
	r.GET("/api/workspaces/list", middleware.AuthMiddleware(), wr.listWorkspacesHandler)
}

func (wr *WorkspaceRoutes) getWorkspaceHandler(c *gin.Context) {
	workspaceID := c.Param("id")

	data, err := wr.server.GetDB().GetWorkspace(c.Request.Context(), workspaceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"workspaceId": workspaceID,
		"data":        data,
	})
}

func (wr *WorkspaceRoutes) createWorkspaceHandler(c *gin.Context) {
	claims := currentClaims(c)

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" {
		req.Name = "New Workspace"
	}

	workspaceID, err := wr.server.GetDB().CreateWorkspace(c.Request.Context(), req.Name, claims.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"workspaceId": workspaceID,
		"name":        req.Name,
	})
}

func (wr *WorkspaceRoutes) listWorkspacesHandler(c *gin.Context) {
	claims := currentClaims(c)

	workspaces, err := wr.server.GetDB().GetUserWorkspaces(c.Request.Context(), claims.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"workspaces": workspaces})
}
