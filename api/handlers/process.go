package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/convertly/convertly/internal/dispatch"
	"github.com/convertly/convertly/internal/tools"
	"github.com/convertly/convertly/pkg/logger"
	"github.com/convertly/convertly/pkg/storage"
)

// uploadField is the multipart form field carrying the files.
const uploadField = "files"

// ProcessTool is the main endpoint: accept uploads, dispatch to the tool's
// routine, return the artifact descriptor.
func (h *Handlers) ProcessTool(c *gin.Context) {
	toolID := c.Param("toolId")

	headers, options, err := h.parseRequest(c)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if len(headers) > h.cfg.MaxFilesPerRequest {
		h.respondError(c, http.StatusBadRequest,
			fmt.Sprintf("At most %d files may be uploaded per request, got %d",
				h.cfg.MaxFilesPerRequest, len(headers)))
		return
	}

	inputs, err := h.saveUploads(headers)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.router.Process(c.Request.Context(), toolID, inputs, options)
	if err != nil {
		if de, isDispatch := dispatch.AsError(err); isDispatch {
			h.respondError(c, de.HTTPStatus(), de.Message)
			return
		}
		h.respondError(c, http.StatusInternalServerError, "Processing failed")
		return
	}

	c.JSON(http.StatusOK, Envelope{
		Success:     true,
		Data:        result,
		DownloadURL: "/api/download/" + result.FileID,
	})
}

// parseRequest extracts file headers and the raw option bag from a multipart
// or url-encoded request body. Tools without file input do not need a
// multipart body.
func (h *Handlers) parseRequest(c *gin.Context) ([]*multipart.FileHeader, map[string]string, error) {
	options := make(map[string]string)

	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, nil, fmt.Errorf("invalid multipart form: %w", err)
		}
		for key, values := range form.Value {
			if len(values) > 0 {
				options[key] = values[0]
			}
		}
		return form.File[uploadField], options, nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, nil, fmt.Errorf("invalid form body: %w", err)
	}
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			options[key] = values[0]
		}
	}
	return nil, options, nil
}

// saveUploads persists every part through the storage layout, concurrently
// but order-preserving. On any failure everything already written for this
// request is removed.
func (h *Handlers) saveUploads(headers []*multipart.FileHeader) ([]tools.Input, error) {
	inputs := make([]tools.Input, len(headers))
	var mu sync.Mutex

	var g errgroup.Group
	for i, header := range headers {
		i, header := i, header
		g.Go(func() error {
			part, err := header.Open()
			if err != nil {
				return fmt.Errorf("failed to open upload %q: %w", header.Filename, err)
			}
			defer part.Close()

			saved, err := h.store.SaveUpload(uploadField, header.Filename, part)
			if err != nil {
				return err
			}

			saved.MimeType = h.detectMime(saved, header)

			mu.Lock()
			inputs[i] = tools.Input{
				OriginalName: saved.OriginalName,
				Path:         saved.StoredPath,
				SizeBytes:    saved.SizeBytes,
				MimeType:     saved.MimeType,
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, in := range inputs {
			if in.Path != "" {
				if rmErr := h.store.Remove(in.Path); rmErr != nil {
					h.logger.Warn("failed to remove partial upload",
						logger.String("path", in.Path),
						logger.Error(rmErr),
					)
				}
			}
		}
		return nil, err
	}
	return inputs, nil
}

// detectMime sniffs the stored file's content, falling back to the part
// header's declared type.
func (h *Handlers) detectMime(saved *storage.UploadedFile, header *multipart.FileHeader) string {
	f, err := h.store.Open(saved.StoredPath)
	if err == nil {
		defer f.Close()
		if mt, err := mimetype.DetectReader(f); err == nil {
			return mt.String()
		}
	}
	return header.Header.Get("Content-Type")
}

func (h *Handlers) respondError(c *gin.Context, status int, message string) {
	h.logger.Error("request failed",
		logger.String("path", c.Request.URL.Path),
		logger.Int("status", status),
		logger.String("error", message),
	)
	c.JSON(status, fail(message))
}
