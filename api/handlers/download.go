package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/convertly/convertly/internal/dispatch"
	"github.com/convertly/convertly/pkg/logger"
)

// mimeByExtension is the fixed extension to content type table used for
// downloads. Unknown extensions fall back to content sniffing.
var mimeByExtension = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tiff": "image/tiff",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".mp3":  "audio/mpeg",
	".txt":  "text/plain; charset=utf-8",
	".csv":  "text/csv; charset=utf-8",
	".json": "application/json",
	".xml":  "application/xml",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".zip":  "application/zip",
}

// Download streams a generated artifact by its public file id. Evicted or
// unknown ids fail with a structured 404.
func (h *Handlers) Download(c *gin.Context) {
	name := c.Param("filename")

	path, err := h.store.ResolveDownload(name)
	if err != nil {
		h.artifactMissing(c, name)
		return
	}

	size, err := h.store.FileSize(path)
	if err != nil {
		h.artifactMissing(c, name)
		return
	}

	contentType := mimeByExtension[strings.ToLower(filepath.Ext(name))]
	if contentType == "" {
		if f, err := h.store.Open(path); err == nil {
			if mt, err := mimetype.DetectReader(f); err == nil {
				contentType = mt.String()
			}
			f.Close()
		}
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	f, err := h.store.Open(path)
	if err != nil {
		h.artifactMissing(c, name)
		return
	}
	defer f.Close()

	c.DataFromReader(http.StatusOK, size, contentType, f, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", name),
	})
}

// artifactMissing answers a download miss through the typed error so the
// status mapping stays in one place.
func (h *Handlers) artifactMissing(c *gin.Context, name string) {
	de := dispatch.ArtifactNotFound(name)
	h.logger.Debug("download miss", logger.String("artifact", name))
	c.JSON(de.HTTPStatus(), fail(de.Message))
}
