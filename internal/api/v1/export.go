package v1

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	exportFilename  = "elvanto_export.xlsx"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	downloadTTL     = 10 * time.Minute
)

// ExportXLSX renders the posted people list as a spreadsheet and
// returns it directly as an attachment.
// POST /api/export/xlsx
func (h *Handler) ExportXLSX(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	f, err := h.exporter.Export(req.People)
	if err != nil {
		respondError(c, err)
		return
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		respondError(c, err)
		return
	}
	h.metrics.ObservePeopleExported(len(req.People))

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", exportFilename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Export renders the spreadsheet server-side and parks it behind a
// one-time download token instead of streaming it back.
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	f, err := h.exporter.Export(req.People)
	if err != nil {
		respondError(c, err)
		return
	}

	tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("elvanto_export_%d_%d.xlsx", time.Now().UnixNano(), os.Getpid()))
	if err := f.SaveAs(tempPath); err != nil {
		_ = os.Remove(tempPath)
		respondError(c, err)
		return
	}
	h.metrics.ObservePeopleExported(len(req.People))

	token := h.downloads.put(tempPath, len(req.People), downloadTTL)
	c.JSON(http.StatusOK, gin.H{
		"download_url": "/api/export/download/" + token,
		"count":        len(req.People),
		"expires_in":   int(downloadTTL.Seconds()),
	})
}

// DownloadExport serves a previously built spreadsheet. The token is
// one-shot; the file is removed after the download.
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download link expired"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "export file no longer exists"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", exportFilename))
	c.Header("Content-Type", xlsxContentType)
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}
