package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studioflow/internal/graph"
)

type GraphRoutes struct {
	server ServerInterface
}

func NewGraphRoutes(server ServerInterface) *GraphRoutes {
	return &GraphRoutes{server: server}
}

func (gr *GraphRoutes) RegisterRoutes(r *gin.Engine) {
	middleware := NewMiddleware(gr.server)

	r.POST("/api/graphs/process", middleware.AuthMiddleware(), gr.processGraphHandler)
	r.POST("/api/graphs/data", middleware.AuthMiddleware(), gr.chartDataHandler)
}

// processGraphHandler rasterizes the chart and returns it as a PNG data URL
// alongside the computed stats.
func (gr *GraphRoutes) processGraphHandler(c *gin.Context) {
	var req graph.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := graph.GeneratePlot(req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, graph.ErrNoData) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// chartDataHandler returns the Chart.js-shaped payload without rendering.
func (gr *GraphRoutes) chartDataHandler(c *gin.Context) {
	var req graph.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, graph.ProcessChartData(req))
}
