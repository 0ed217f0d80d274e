package routes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"studioflow/internal/export"
)

type ExportRoutes struct {
	server ServerInterface
}

func NewExportRoutes(server ServerInterface) *ExportRoutes {
	return &ExportRoutes{server: server}
}

func (er *ExportRoutes) RegisterRoutes(r *gin.Engine) {
	middleware := NewMiddleware(er.server)

	r.POST("/api/export/document", middleware.AuthMiddleware(), er.exportDocumentHandler)
}

func (er *ExportRoutes) exportDocumentHandler(c *gin.Context) {
	var req struct {
		Format  string         `json:"format"`
		Content export.Content `json:"content"`
		Title   string         `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Format == "" {
		req.Format = "markdown"
	}
	if req.Title == "" {
		req.Title = "Untitled Document"
	}

	switch req.Format {
	case "pdf":
		data, err := export.ToPDF(req.Content, req.Title)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		sendAttachment(c, data, "application/pdf", req.Title+".pdf")

	case "markdown":
		sendAttachment(c, []byte(export.ToMarkdown(req.Content)), "text/markdown", req.Title+".md")

	case "html":
		sendAttachment(c, []byte(export.ToHTML(req.Content, req.Title)), "text/html", req.Title+".html")

	case "json":
		data, err := json.MarshalIndent(req.Content, "", "    ")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		sendAttachment(c, data, "application/json", req.Title+".json")

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported format"})
	}
}

func sendAttachment(c *gin.Context, data []byte, contentType, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
