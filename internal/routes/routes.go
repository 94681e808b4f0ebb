package routes

import (
	"net/http"

	"piwork_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the whole API under /api/v1. Each handler owns its own
// route group; this file only stitches them together.
func RegisterRoutes(r *gin.Engine, h *handlers.AppHandlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	h.AuthHandler.RegisterRoutes(v1)
	h.UserHandler.RegisterRoutes(v1)
	h.ProfileHandler.RegisterRoutes(v1)
	h.CaseHandler.RegisterRoutes(v1)
	h.ReviewHandler.RegisterRoutes(v1)
	h.NotificationHandler.RegisterRoutes(v1)
	h.SubscriptionHandler.RegisterRoutes(v1)
	h.AdminHandler.RegisterRoutes(v1)
}
