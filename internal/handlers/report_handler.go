package handlers

import (
	"net/http"

	"broadcast_backend/internal/services"
	"broadcast_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	*BaseHandler
	reportService services.ReportService
}

func NewReportHandler(base *BaseHandler, reportService services.ReportService) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   base,
		reportService: reportService,
	}
}

func (h *ReportHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/admin/broadcasts", h.Auth.Required(), h.GetBroadcastTable)
	r.GET("/admin/reports/acknowledgements", h.Auth.Required(), h.GetAcknowledgementReport)
}

// GetBroadcastTable godoc
// @Summary Таблица управления рассылками
// @Tags admin-reports
// @Produce json
// @Security BearerAuth
// @Param page query int false "Страница"
// @Param page_size query int false "Размер страницы"
// @Param sort query string false "id, title, time_created, time_start, time_end"
// @Param order query string false "asc или desc"
// @Success 200 {object} dto.BroadcastTableResponse
// @Router /api/v1/admin/broadcasts [get]
func (h *ReportHandler) GetBroadcastTable(c *gin.Context) {
	actor, ok := h.GetAndAuthorizeActor(c)
	if !ok {
		return
	}
	var query dto.BroadcastTableQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	page, pageSize := ParsePagination(c)

	table, err := h.reportService.GetBroadcastTable(h.GetDB(c), actor, &query, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, table)
}

// GetAcknowledgementReport godoc
// @Summary Отчет о подтверждениях
// @Tags admin-reports
// @Produce json
// @Security BearerAuth
// @Param broadcastid query int false "ID рассылки, 0 - все"
// @Param page query int false "Страница"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} dto.AckReportResponse
// @Router /api/v1/admin/reports/acknowledgements [get]
func (h *ReportHandler) GetAcknowledgementReport(c *gin.Context) {
	actor, ok := h.GetAndAuthorizeActor(c)
	if !ok {
		return
	}
	var query dto.AckReportQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	page, pageSize := ParsePagination(c)

	report, err := h.reportService.GetAcknowledgementReport(h.GetDB(c), actor, query.BroadcastID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
