package controllers

import (
	"fmt"
	"net/http"

	"Gin_postgres_redis_lab_inventory/app"
	"Gin_postgres_redis_lab_inventory/importer"

	"github.com/gin-gonic/gin"
)

type ImportController struct{ *Srv }

func NewImportController(s *Srv) *ImportController { return &ImportController{Srv: s} }

// ImportComponents takes a multipart "file" upload (csv/xlsx/xls), parses
// it and runs the row-by-row import. Row failures come back in the
// response, they never abort the batch.
func (ic *ImportController) ImportComponents(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "No file part"})
		return
	}
	if fh.Filename == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "No selected file"})
		return
	}
	if !importer.SupportedExt(fh.Filename) {
		c.JSON(http.StatusBadRequest, app.H{"error": importer.ErrUnsupportedFile.Error()})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	defer f.Close()

	rows, err := importer.Parse(fh.Filename, f)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	res, err := ic.Repo.ImportComponents(c.Request.Context(), app.ActorFrom(c), rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{
		"message":        fmt.Sprintf("Successfully processed %d components", res.ImportedCount),
		"imported_count": res.ImportedCount,
		"errors":         res.Errors,
		"total_rows":     res.TotalRows,
	})
}
