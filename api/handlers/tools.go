package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/convertly/convertly/internal/registry"
)

// ListTools serves the tool catalog.
func (h *Handlers) ListTools(c *gin.Context) {
	c.JSON(http.StatusOK, ok(h.registry.List()))
}

// DescribeTool serves one tool's full descriptor, localized by the lang query
// parameter or the Accept-Language header.
func (h *Handlers) DescribeTool(c *gin.Context) {
	toolID := c.Param("toolId")
	lang := registry.ResolveLanguage(c.Query("lang"), c.GetHeader("Accept-Language"))

	d, found := h.registry.DescribeLocalized(toolID, lang)
	if !found {
		c.JSON(http.StatusNotFound, fail("Tool not found"))
		return
	}

	c.JSON(http.StatusOK, ok(d))
}

// Health is the liveness probe.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, ok(gin.H{"status": "ok"}))
}
