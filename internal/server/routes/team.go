package routes

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type TeamRoutes struct {
	server ServerInterface
}

func NewTeamRoutes(server ServerInterface) *TeamRoutes {
	return &TeamRoutes{server: server}
}

func (tr *TeamRoutes) RegisterRoutes(r *gin.Engine) {
	middleware := NewMiddleware(tr.server)

	r.POST("/api/team/invite", middleware.AuthMiddleware(), tr.inviteMemberHandler)
	r.GET("/api/user/invites", middleware.AuthMiddleware(), tr.listInvitesHandler)
	r.POST("/api/user/invites/respond", middleware.AuthMiddleware(), tr.respondToInviteHandler)
}

func (tr *TeamRoutes) inviteMemberHandler(c *gin.Context) {
	claims := currentClaims(c)

	var req struct {
		Email       string `json:"email"`
		WorkspaceID string `json:"workspaceId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.WorkspaceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and Workspace ID required"})
		return
	}

	inviteID, err := tr.server.GetDB().CreateInvite(c.Request.Context(), req.WorkspaceID, req.Email, claims.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  fmt.Sprintf("Invite sent to %s", req.Email),
		"inviteId": inviteID,
	})
}

func (tr *TeamRoutes) listInvitesHandler(c *gin.Context) {
	claims := currentClaims(c)
	if claims.Email == "" {
		c.JSON(http.StatusOK, gin.H{"invites": []interface{}{}})
		return
	}

	invites, err := tr.server.GetDB().GetInvitesForEmail(c.Request.Context(), claims.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(invites) == 0 {
		c.JSON(http.StatusOK, gin.H{"invites": []interface{}{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"invites": invites})
}

func (tr *TeamRoutes) respondToInviteHandler(c *gin.Context) {
	claims := currentClaims(c)

	var req struct {
		InviteID    string `json:"inviteId"`
		Action      string `json:"action"`
		WorkspaceID string `json:"workspaceId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.InviteID == "" || req.Action == "" || req.WorkspaceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	accept := req.Action == "accept"
	err := tr.server.GetDB().RespondToInvite(c.Request.Context(), req.WorkspaceID, req.InviteID, claims.Email, claims.UID, accept)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
