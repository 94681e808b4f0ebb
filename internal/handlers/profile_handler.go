package handlers

import (
	"net/http"

	"piwork_backend/internal/middleware"
	"piwork_backend/internal/models"
	"piwork_backend/internal/repositories"
	"piwork_backend/internal/services"
	"piwork_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
	reviewService  services.ReviewService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService, reviewService services.ReviewService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
		reviewService:  reviewService,
	}
}

func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	investigators := rg.Group("/investigators")
	investigators.Use(middleware.AuthMiddleware())
	{
		investigators.GET("", h.ListInvestigators)
		investigators.GET("/:userId", h.GetInvestigator)
		investigators.GET("/:userId/reviews", h.ListInvestigatorReviews)
		investigators.PUT("/me", middleware.RoleMiddleware(models.UserRoleInvestigator), h.UpdateOwnProfile)
	}
}

// ListInvestigators is the directory subscribers browse before assigning.
func (h *ProfileHandler) ListInvestigators(c *gin.Context) {
	var filter repositories.InvestigatorFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	response, err := h.profileService.ListInvestigators(filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProfileHandler) GetInvestigator(c *gin.Context) {
	profile, err := h.profileService.GetInvestigatorProfile(c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) ListInvestigatorReviews(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	response, err := h.reviewService.ListInvestigatorReviews(c.Param("userId"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProfileHandler) UpdateOwnProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateInvestigatorProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateInvestigatorProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
