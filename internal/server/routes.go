package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"studioflow/internal/server/routes"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(s.logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/", s.rootHandler)
	r.GET("/api/health", s.healthHandler)

	routes.NewAuthRoutes(s).RegisterRoutes(r)
	routes.NewUserRoutes(s).RegisterRoutes(r)
	routes.NewCSVRoutes(s).RegisterRoutes(r)
	routes.NewExportRoutes(s).RegisterRoutes(r)
	routes.NewWorkspaceRoutes(s).RegisterRoutes(r)
	routes.NewTeamRoutes(s).RegisterRoutes(r)
	routes.NewHistoryRoutes(s).RegisterRoutes(r)
	routes.NewGraphRoutes(s).RegisterRoutes(r)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})

	return r
}

func (s *Server) rootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "studioflow api"})
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "studioflow-backend",
		"version": "2.0.0",
		"features": []string{
			"authentication",
			"csv-import-export",
			"document-export",
			"graphs",
			"workspace-history",
		},
	})
}
