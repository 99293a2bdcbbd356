package handlers

import (
	"net/http"

	"broadcast_backend/internal/services"
	"broadcast_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	*BaseHandler
	catalogService services.CatalogService
}

func NewCatalogHandler(base *BaseHandler, catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler:    base,
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/admin/courses/eligible", h.Auth.Required(), h.GetEligibleCourses)

	admin := r.Group("/admin")
	admin.Use(h.Auth.Required(), h.Auth.RequireSiteAdmin())
	{
		admin.POST("/categories", h.CreateCategory)
		admin.POST("/courses", h.CreateCourse)
		admin.POST("/modules", h.CreateModule)
	}
}

// GetEligibleCourses godoc
// @Summary Курсы, в которых пользователь может создавать рассылки
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.EligibleCoursesResponse
// @Router /api/v1/admin/courses/eligible [get]
func (h *CatalogHandler) GetEligibleCourses(c *gin.Context) {
	actor, ok := h.GetAndAuthorizeActor(c)
	if !ok {
		return
	}

	courses, err := h.catalogService.GetEligibleCourses(h.GetDB(c), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EligibleCoursesResponse{Courses: courses})
}

// CreateCategory godoc
// @Summary Создать категорию курсов
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCategoryRequest true "Категория"
// @Success 201 {object} dto.CatalogItemResponse
// @Router /api/v1/admin/categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.catalogService.CreateCategory(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// CreateCourse godoc
// @Summary Создать курс
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Курс"
// @Success 201 {object} dto.CatalogItemResponse
// @Router /api/v1/admin/courses [post]
func (h *CatalogHandler) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.catalogService.CreateCourse(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// CreateModule godoc
// @Summary Создать модуль курса
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateModuleRequest true "Модуль"
// @Success 201 {object} dto.CatalogItemResponse
// @Router /api/v1/admin/modules [post]
func (h *CatalogHandler) CreateModule(c *gin.Context) {
	var req dto.CreateModuleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.catalogService.CreateModule(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}
