package handlers

import (
	"net/http"

	"piwork_backend/internal/middleware"
	"piwork_backend/internal/models"
	"piwork_backend/internal/services"
	"piwork_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CaseHandler struct {
	*BaseHandler
	caseService    services.CaseService
	messageService services.MessageService
}

func NewCaseHandler(base *BaseHandler, caseService services.CaseService, messageService services.MessageService) *CaseHandler {
	return &CaseHandler{
		BaseHandler:    base,
		caseService:    caseService,
		messageService: messageService,
	}
}

func (h *CaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cases := rg.Group("/cases")
	cases.Use(middleware.AuthMiddleware())
	{
		cases.POST("", middleware.RoleMiddleware(models.UserRoleSubscriber), h.CreateCase)
		cases.GET("", h.ListCases)
		cases.GET("/:caseId", h.GetCase)
		cases.PUT("/:caseId", h.UpdateCase)
		cases.DELETE("/:caseId", middleware.RoleMiddleware(models.UserRoleSubscriber), h.DeleteCase)
		cases.POST("/:caseId/assign", middleware.RoleMiddleware(models.UserRoleSubscriber), h.AssignInvestigator)

		cases.GET("/:caseId/messages", h.ListMessages)
		cases.POST("/:caseId/messages", h.PostMessage)
	}
}

func (h *CaseHandler) CreateCase(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCaseRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	kase, err := h.caseService.CreateCase(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, kase)
}

func (h *CaseHandler) ListCases(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	page, pageSize := ParsePagination(c)

	response, err := h.caseService.ListCases(userID, middleware.GetUserRole(c), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *CaseHandler) GetCase(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.caseService.GetCase(c.Param("caseId"), userID, middleware.GetUserRole(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *CaseHandler) UpdateCase(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCaseRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	kase, err := h.caseService.UpdateCase(c.Param("caseId"), userID, middleware.GetUserRole(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, kase)
}

func (h *CaseHandler) AssignInvestigator(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AssignInvestigatorRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	kase, err := h.caseService.AssignInvestigator(c.Param("caseId"), req.InvestigatorID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, kase)
}

func (h *CaseHandler) DeleteCase(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.caseService.DeleteCase(c.Param("caseId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Case deleted"})
}

func (h *CaseHandler) ListMessages(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	messages, err := h.messageService.ListMessages(c.Param("caseId"), userID, middleware.GetUserRole(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (h *CaseHandler) PostMessage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.PostMessageRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	message, err := h.messageService.PostMessage(c.Param("caseId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}
