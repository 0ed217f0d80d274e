package routes

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"studioflow/internal/csvio"
)

type CSVRoutes struct {
	server ServerInterface
}

func NewCSVRoutes(server ServerInterface) *CSVRoutes {
	return &CSVRoutes{server: server}
}

func (cr *CSVRoutes) RegisterRoutes(r *gin.Engine) {
	middleware := NewMiddleware(cr.server)

	r.POST("/api/csv/import", middleware.AuthMiddleware(), cr.importHandler)
	r.POST("/api/csv/export", middleware.AuthMiddleware(), cr.exportHandler)
	r.POST("/api/csv/validate", middleware.AuthMiddleware(), cr.validateHandler)
}

func (cr *CSVRoutes) importHandler(c *gin.Context) {
	data, errMsg := readUploadedFile(c)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return
	}

	table, err := csvio.Import(data)
	if err != nil {
		// Parse failures are reported in the body, not via HTTP status.
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"columns":     table.Columns,
		"rows":        table.Rows,
		"rowCount":    len(table.Rows),
		"columnCount": len(table.Columns),
	})
}

func (cr *CSVRoutes) exportHandler(c *gin.Context) {
	var req struct {
		Columns []string                 `json:"columns"`
		Rows    []map[string]interface{} `json:"rows"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, err := csvio.Export(req.Columns, req.Rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="export.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

func (cr *CSVRoutes) validateHandler(c *gin.Context) {
	data, errMsg := readUploadedFile(c)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return
	}

	result, err := csvio.Validate(data)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":         true,
		"columns":       result.Columns,
		"preview":       result.Preview,
		"estimatedRows": result.EstimatedRows,
	})
}

// readUploadedFile reads the multipart "file" field, returning a
// client-facing error message when the upload is missing or unreadable.
func readUploadedFile(c *gin.Context) ([]byte, string) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, "No file provided"
	}
	if fileHeader.Filename == "" {
		return nil, "No file selected"
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "No file provided"
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "No file provided"
	}
	return data, ""
}
