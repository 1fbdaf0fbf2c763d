package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/convertly/convertly/api/handlers"
	"github.com/convertly/convertly/api/middleware"
)

// SetupRoutes wires all endpoints onto the engine.
func SetupRoutes(r *gin.Engine, h *handlers.Handlers, allowedOrigins []string) {
	r.Use(middleware.CORS(allowedOrigins))

	// Every unmatched route still answers with the uniform envelope.
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.Envelope{Success: false, Error: "Not found"})
	})

	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/tools", h.ListTools)
		api.GET("/tools/:toolId", h.DescribeTool)
		api.POST("/tools/:toolId/process", h.ProcessTool)
		api.GET("/download/:filename", h.Download)
	}
}
