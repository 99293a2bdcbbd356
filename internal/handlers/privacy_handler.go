package handlers

import (
	"net/http"

	"broadcast_backend/internal/services"
	"broadcast_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PrivacyHandler struct {
	*BaseHandler
	privacyService services.PrivacyService
}

func NewPrivacyHandler(base *BaseHandler, privacyService services.PrivacyService) *PrivacyHandler {
	return &PrivacyHandler{
		BaseHandler:    base,
		privacyService: privacyService,
	}
}

func (h *PrivacyHandler) RegisterRoutes(r *gin.RouterGroup) {
	privacy := r.Group("/privacy")
	privacy.Use(h.Auth.Required(), h.Auth.RequireSiteAdmin())
	{
		privacy.GET("/users/:userId/export", h.ExportUserData)
		privacy.DELETE("/users/:userId", h.DeleteUserData)
		privacy.DELETE("/contexts/:contextId", h.DeleteContextData)
	}
}

// ExportUserData godoc
// @Summary Экспорт подтверждений пользователя
// @Tags privacy
// @Produce json
// @Security BearerAuth
// @Param userId path int true "ID пользователя"
// @Success 200 {object} dto.UserDataExport
// @Router /api/v1/privacy/users/{userId}/export [get]
func (h *PrivacyHandler) ExportUserData(c *gin.Context) {
	userID, err := ParseParamUint(c, "userId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	export, err := h.privacyService.ExportUserData(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, export)
}

// DeleteUserData godoc
// @Summary Удалить все подтверждения пользователя
// @Tags privacy
// @Produce json
// @Security BearerAuth
// @Param userId path int true "ID пользователя"
// @Success 200 {object} dto.DeleteDataResponse
// @Router /api/v1/privacy/users/{userId} [delete]
func (h *PrivacyHandler) DeleteUserData(c *gin.Context) {
	userID, err := ParseParamUint(c, "userId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	deleted, err := h.privacyService.DeleteUserData(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteDataResponse{Deleted: deleted})
}

// DeleteContextData godoc
// @Summary Удалить все подтверждения, сделанные в контексте
// @Tags privacy
// @Produce json
// @Security BearerAuth
// @Param contextId path int true "ID контекста"
// @Success 200 {object} dto.DeleteDataResponse
// @Router /api/v1/privacy/contexts/{contextId} [delete]
func (h *PrivacyHandler) DeleteContextData(c *gin.Context) {
	contextID, err := ParseParamUint(c, "contextId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	deleted, err := h.privacyService.DeleteContextData(h.GetDB(c), contextID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteDataResponse{Deleted: deleted})
}
