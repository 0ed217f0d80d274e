package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HistoryRoutes struct {
	server ServerInterface
}

func NewHistoryRoutes(server ServerInterface) *HistoryRoutes {
	return &HistoryRoutes{server: server}
}

func (hr *HistoryRoutes) RegisterRoutes(r *gin.Engine) {
	middleware := NewMiddleware(hr.server)

	r.GET("/api/history/:workspaceID", middleware.AuthMiddleware(), hr.getHistoryHandler)
	r.POST("/api/history/:workspaceID/save", middleware.AuthMiddleware(), hr.saveSnapshotHandler)
	r.POST("/api/history/:workspaceID/restore/:snapshotID", middleware.AuthMiddleware(), hr.restoreSnapshotHandler)
}

func (hr *HistoryRoutes) getHistoryHandler(c *gin.Context) {
	workspaceID := c.Param("workspaceID")

	history, err := hr.server.GetDB().GetHistory(c.Request.Context(), workspaceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, history)
}

func (hr *HistoryRoutes) saveSnapshotHandler(c *gin.Context) {
	claims := currentClaims(c)
	workspaceID := c.Param("workspaceID")

	var req struct {
		Content interface{} `json:"content"`
		UserID  string      `json:"userId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content required"})
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = claims.UID
	}

	snapshotID, err := hr.server.GetDB().SaveSnapshot(c.Request.Context(), workspaceID, req.Content, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshotId": snapshotID})
}

func (hr *HistoryRoutes) restoreSnapshotHandler(c *gin.Context) {
	workspaceID := c.Param("workspaceID")
	snapshotID := c.Param("snapshotID")

	if err := hr.server.GetDB().RestoreSnapshot(c.Request.Context(), workspaceID, snapshotID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to restore"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
