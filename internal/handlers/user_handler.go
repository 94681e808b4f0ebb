package handlers

import (
	"net/http"

	"piwork_backend/internal/middleware"
	"piwork_backend/internal/models"
	"piwork_backend/internal/services"
	"piwork_backend/internal/services/dto"
	"piwork_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
	demoMode    bool
}

func NewUserHandler(base *BaseHandler, userService services.UserService, demoMode bool) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
		demoMode:    demoMode,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me", h.GetMe)
		users.PUT("/role", h.SwitchRole)
	}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.userService.GetMe(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// SwitchRole flips the account between subscriber and investigator. Demo
// convenience only; disabled outside demo mode.
func (h *UserHandler) SwitchRole(c *gin.Context) {
	if !h.demoMode {
		apperrors.HandleError(c, apperrors.NewForbiddenError("Role switching is disabled"))
		return
	}

	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SwitchRoleRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	response, err := h.userService.SwitchRole(userID, models.UserRole(req.Role))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
