package handlers

import (
	"net/http"

	"piwork_backend/internal/middleware"
	"piwork_backend/internal/models"
	"piwork_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	userService      services.UserService
	analyticsService services.AnalyticsService
}

func NewAdminHandler(base *BaseHandler, userService services.UserService, analyticsService services.AnalyticsService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:      base,
		userService:      userService,
		analyticsService: analyticsService,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("/stats", h.GetPlatformStats)
		admin.GET("/users", h.ListUsers)
	}
}

func (h *AdminHandler) GetPlatformStats(c *gin.Context) {
	stats, err := h.analyticsService.GetPlatformStats()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	response, err := h.userService.ListUsers(page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
