package handlers

import (
	"net/http"

	"broadcast_backend/internal/services"
	"broadcast_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type BroadcastHandler struct {
	*BaseHandler
	broadcastService services.BroadcastService
}

func NewBroadcastHandler(base *BaseHandler, broadcastService services.BroadcastService) *BroadcastHandler {
	return &BroadcastHandler{
		BaseHandler:      base,
		broadcastService: broadcastService,
	}
}

func (h *BroadcastHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Легкий опрос: сессия не обязательна
	r.GET("/broadcasts/check", h.Auth.Optional(), h.CheckBroadcasts)

	user := r.Group("/broadcasts")
	user.Use(h.Auth.Required())
	{
		user.GET("", h.GetBroadcasts)
		user.POST("/:broadcastId/acknowledge", h.AcknowledgeBroadcast)
	}

	admin := r.Group("/admin/broadcasts")
	admin.Use(h.Auth.Required())
	{
		admin.POST("", h.CreateBroadcast)
		admin.GET("/names", h.GetBroadcastNames)
		admin.PUT("/:broadcastId", h.UpdateBroadcast)
		admin.DELETE("/:broadcastId", h.DeleteBroadcast)
		admin.POST("/:broadcastId/copy", h.CopyBroadcast)
		admin.GET("/:broadcastId/formdata", h.GetBroadcastFormData)
		admin.GET("/:broadcastId/name", h.GetBroadcastName)
	}
}

// --- End user handlers ---

// CheckBroadcasts godoc
// @Summary Есть ли активные рассылки
// @Description Легкая проверка для периодического опроса; работает и без сессии
// @Tags broadcasts
// @Produce json
// @Param contextid query int true "Контекст страницы"
// @Param now query int false "Момент времени (unix), по умолчанию текущий"
// @Success 200 {object} dto.CheckResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/broadcasts/check [get]
func (h *BroadcastHandler) CheckBroadcasts(c *gin.Context) {
	var query dto.BroadcastQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	resp, err := h.broadcastService.CheckBroadcasts(h.GetDB(c), h.GetActor(c), query.ContextID, query.Now)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetBroadcasts godoc
// @Summary Активные рассылки пользователя в контексте
// @Tags broadcasts
// @Produce json
// @Security BearerAuth
// @Param contextid query int true "Контекст страницы"
// @Param now query int false "Момент времени (unix)"
// @Success 200 {array} dto.BroadcastResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/broadcasts [get]
func (h *BroadcastHandler) GetBroadcasts(c *gin.Context) {
	actor, ok := h.GetAndAuthorizeActor(c)
	if !ok {
		return
	}
	var query dto.BroadcastQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	broadcasts, err := h.broadcastService.GetBroadcasts(h.GetDB(c), actor, query.ContextID, query.Now)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, broadcasts)
}

// AcknowledgeBroadcast godoc
// @Summary Подтвердить (закрыть) рассылку
// @Tags broadcasts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param broadcastId path int true "ID рассылки"
// @Param request body dto.AcknowledgeRequest true "Контекст, в котором пользователь закрыл сообщение"
// @Success 200 {object} map[string]string
// @Failure 404 {object} apperrors.ErrorResponse "Broadcast does not exist"
// @Router /api/v1/broadcasts/{broadcastId}/acknowledge [post]
func (h *BroadcastHandler) AcknowledgeBroadcast(c *gin.Context) {
	actor, ok := h.GetAndAuthorizeActor(c)
	if !ok {
		return
	}
	broadcastID, err := ParseParamUint(c, "broadcastId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	var req dto.AcknowledgeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.broadcastService.AcknowledgeBroadcast(h.GetDB(c), actor, req.ContextID, broadcastID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Broadcast acknowledged"})
}

// --- Admin handlers ---

// CreateBroadcast godoc
// @Summary Создать рассылку
// @Tags admin-broadcasts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BroadcastRequest true "Поля формы"
// @Success 201 {object} dto.CreateBroadcastResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/v1/admin/broadcasts [post]
func (h *BroadcastHandler) CreateBroadcast(c *gin.Context) {
	actor, ok := h.GetAndAuthorizeActor(c)
	if !ok {
		return
	}
	var req dto.BroadcastRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	id, err := h.broadcastService.CreateBroadcast(h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateBroadcastResponse{ID: id})
}

// UpdateBroadcast godoc
// @Summary Обновить рассылку (все поля целиком)
// @Tags admin-broadcasts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param broadcastId path int true "ID рассылки"
// @Param request body dto.BroadcastRequest true "Поля формы"
// @Success 200 {object} map[string]string
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/admin/broadcasts/{broadcastId} [put]
func (h *BroadcastHandler) UpdateBroadcast(c *gin.Context) {
	actor, ok := h.GetAndAuthorizeActor(c)
	if !ok {
		return
	}
	broadcastID, err := ParseParamUint(c, "broadcastId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	var req dto.BroadcastRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.broadcastService.UpdateBroadcast(h.GetDB(c), actor, broadcastID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Broadcast updated"})
}

// DeleteBroadcast godoc
// @Summary Удалить рассылку вместе с подтверждениями
// @Tags admin-broadcasts
// @Security BearerAuth
// @Param broadcastId path int true "ID рассылки"
// @Success 204
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/admin/broadcasts/{broadcastId} [delete]
func (h *BroadcastHandler) DeleteBroadcast(c *gin.Context) {
	actor, ok := h.GetAndAuthorizeActor(c)
	if !ok {
		return
	}
	broadcastID, err := ParseParamUint(c, "broadcastId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.broadcastService.DeleteBroadcast(h.GetDB(c), actor, broadcastID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CopyBroadcast godoc
// @Summary Дублировать рассылку
// @Tags admin-broadcasts
// @Produce json
// @Security BearerAuth
// @Param broadcastId path int true "ID рассылки"
// @Success 201 {object} dto.CreateBroadcastResponse
// @Router /api/v1/admin/broadcasts/{broadcastId}/copy [post]
func (h *BroadcastHandler) CopyBroadcast(c *gin.Context) {
	actor, ok := h.GetAndAuthorizeActor(c)
	if !ok {
		return
	}
	broadcastID, err := ParseParamUint(c, "broadcastId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	id, err := h.broadcastService.CopyBroadcast(h.GetDB(c), actor, broadcastID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateBroadcastResponse{ID: id})
}

// GetBroadcastFormData godoc
// @Summary Данные рассылки в раскладке формы редактирования
// @Tags admin-broadcasts
// @Produce json
// @Security BearerAuth
// @Param broadcastId path int true "ID рассылки"
// @Success 200 {object} dto.BroadcastFormData
// @Router /api/v1/admin/broadcasts/{broadcastId}/formdata [get]
func (h *BroadcastHandler) GetBroadcastFormData(c *gin.Context) {
	actor, ok := h.GetAndAuthorizeActor(c)
	if !ok {
		return
	}
	broadcastID, err := ParseParamUint(c, "broadcastId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	form, err := h.broadcastService.GetBroadcastFormData(h.GetDB(c), actor, broadcastID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// GetBroadcastName godoc
// @Summary Заголовок рассылки
// @Tags admin-broadcasts
// @Produce json
// @Security BearerAuth
// @Param broadcastId path int true "ID рассылки"
// @Success 200 {object} dto.BroadcastNameResponse
// @Router /api/v1/admin/broadcasts/{broadcastId}/name [get]
func (h *BroadcastHandler) GetBroadcastName(c *gin.Context) {
	actor, ok := h.GetAndAuthorizeActor(c)
	if !ok {
		return
	}
	broadcastID, err := ParseParamUint(c, "broadcastId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	title, err := h.broadcastService.GetBroadcastName(h.GetDB(c), actor, broadcastID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BroadcastNameResponse{ID: broadcastID, Title: title})
}

// GetBroadcastNames godoc
// @Summary Все рассылки (id, заголовок), по возрастанию заголовка
// @Tags admin-broadcasts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.BroadcastNameResponse
// @Router /api/v1/admin/broadcasts/names [get]
func (h *BroadcastHandler) GetBroadcastNames(c *gin.Context) {
	actor, ok := h.GetAndAuthorizeActor(c)
	if !ok {
		return
	}

	names, err := h.broadcastService.GetBroadcastNames(h.GetDB(c), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, names)
}
