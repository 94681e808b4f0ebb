package handlers

import (
	"net/http"

	"piwork_backend/internal/middleware"
	"piwork_backend/internal/models"
	"piwork_backend/internal/services"
	"piwork_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cases := rg.Group("/cases")
	cases.Use(middleware.AuthMiddleware())
	{
		cases.POST("/:caseId/review", middleware.RoleMiddleware(models.UserRoleSubscriber), h.SubmitReview)
	}
}

// SubmitReview records the client's one review of the case's investigator.
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	review, err := h.reviewService.SubmitReview(c.Param("caseId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}
