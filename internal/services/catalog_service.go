package services

import (
	"errors"

	"broadcast_backend/internal/auth"
	"broadcast_backend/internal/logger"
	"broadcast_backend/internal/models"
	"broadcast_backend/internal/repositories"
	"broadcast_backend/internal/services/dto"
	"broadcast_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type CatalogService interface {
	CreateCategory(db *gorm.DB, req *dto.CreateCategoryRequest) (*dto.CatalogItemResponse, error)
	CreateCourse(db *gorm.DB, req *dto.CreateCourseRequest) (*dto.CatalogItemResponse, error)
	CreateModule(db *gorm.DB, req *dto.CreateModuleRequest) (*dto.CatalogItemResponse, error)
	GetEligibleCourses(db *gorm.DB, actor auth.Actor) (map[uint]string, error)
}

type catalogService struct {
	catalogRepo    repositories.CatalogRepository
	contextRepo    repositories.ContextRepository
	userRepo       repositories.UserRepository
	contextService ContextService
}

func NewCatalogService(
	catalogRepo repositories.CatalogRepository,
	contextRepo repositories.ContextRepository,
	userRepo repositories.UserRepository,
	contextService ContextService,
) CatalogService {
	return &catalogService{
		catalogRepo:    catalogRepo,
		contextRepo:    contextRepo,
		userRepo:       userRepo,
		contextService: contextService,
	}
}

// CreateCategory - ParentID == 0 вешает категорию на контекст сайта
func (s *catalogService) CreateCategory(db *gorm.DB, req *dto.CreateCategoryRequest) (*dto.CatalogItemResponse, error) {
	var resp *dto.CatalogItemResponse
	err := db.Transaction(func(tx *gorm.DB) error {
		var parent *models.Context
		var err error
		if req.ParentID == 0 {
			parent, err = s.contextService.GetContext(tx, s.contextService.SiteContextID())
		} else {
			if _, err := s.catalogRepo.FindCategoryByID(tx, req.ParentID); err != nil {
				return handleCatalogError(err)
			}
			parent, err = s.contextService.CategoryContext(tx, req.ParentID)
		}
		if err != nil {
			return err
		}

		category := &models.CourseCategory{Name: req.Name, ParentID: req.ParentID}
		if err := s.catalogRepo.CreateCategory(tx, category); err != nil {
			return apperrors.DatabaseError(err)
		}
		ctx, err := s.contextRepo.CreateChild(tx, parent, models.ContextLevelCategory, category.ID, category.Name)
		if err != nil {
			return apperrors.DatabaseError(err)
		}
		resp = &dto.CatalogItemResponse{ID: category.ID, Name: category.Name, ContextID: ctx.ID, Path: ctx.Path}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(requestContext(db), "Category created", "category_id", resp.ID, "context_id", resp.ContextID)
	return resp, nil
}

func (s *catalogService) CreateCourse(db *gorm.DB, req *dto.CreateCourseRequest) (*dto.CatalogItemResponse, error) {
	var resp *dto.CatalogItemResponse
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.catalogRepo.FindCategoryByID(tx, req.CategoryID); err != nil {
			return handleCatalogError(err)
		}
		parent, err := s.contextService.CategoryContext(tx, req.CategoryID)
		if err != nil {
			return err
		}

		course := &models.Course{Fullname: req.Fullname, Shortname: req.Shortname, CategoryID: req.CategoryID}
		if err := s.catalogRepo.CreateCourse(tx, course); err != nil {
			return apperrors.DatabaseError(err)
		}
		ctx, err := s.contextRepo.CreateChild(tx, parent, models.ContextLevelCourse, course.ID, course.Fullname)
		if err != nil {
			return apperrors.DatabaseError(err)
		}
		resp = &dto.CatalogItemResponse{ID: course.ID, Name: course.Fullname, ContextID: ctx.ID, Path: ctx.Path}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(requestContext(db), "Course created", "course_id", resp.ID, "context_id", resp.ContextID)
	return resp, nil
}

func (s *catalogService) CreateModule(db *gorm.DB, req *dto.CreateModuleRequest) (*dto.CatalogItemResponse, error) {
	var resp *dto.CatalogItemResponse
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.catalogRepo.FindCourseByID(tx, req.CourseID); err != nil {
			return handleCatalogError(err)
		}
		parent, err := s.contextService.CourseContext(tx, req.CourseID)
		if err != nil {
			return err
		}

		module := &models.CourseModule{CourseID: req.CourseID, Name: req.Name, Kind: req.Kind}
		if err := s.catalogRepo.CreateModule(tx, module); err != nil {
			return apperrors.DatabaseError(err)
		}
		ctx, err := s.contextRepo.CreateChild(tx, parent, models.ContextLevelModule, module.ID, module.Name)
		if err != nil {
			return apperrors.DatabaseError(err)
		}
		resp = &dto.CatalogItemResponse{ID: module.ID, Name: module.Name, ContextID: ctx.ID, Path: ctx.Path}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(requestContext(db), "Course module created", "module_id", resp.ID, "context_id", resp.ContextID)
	return resp, nil
}

// GetEligibleCourses - курсы, в контексте которых пользователь может создавать рассылки.
// Роли наследуются вниз по дереву, поэтому достаточно пересечь путь курса с контекстами назначений.
func (s *catalogService) GetEligibleCourses(db *gorm.DB, actor auth.Actor) (map[uint]string, error) {
	courses, err := s.catalogRepo.FindCoursesWithContext(db)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	eligible := make(map[uint]string)
	if actor.IsGuest() {
		return eligible, nil
	}
	if actor.SiteAdmin {
		for _, c := range courses {
			eligible[c.CourseID] = c.Fullname
		}
		return eligible, nil
	}

	assignments, err := s.userRepo.FindRoles(db, actor.UserID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	granting := make(map[uint]bool)
	for _, a := range assignments {
		if auth.HasPermission(a.Role, auth.CapabilityCreateBroadcasts) {
			granting[a.ContextID] = true
		}
	}
	if len(granting) == 0 {
		return eligible, nil
	}

	for _, c := range courses {
		ctx := models.Context{BaseModel: models.BaseModel{ID: c.ContextID}, Path: c.ContextPath}
		chain, err := ctx.AncestorIDs()
		if err != nil {
			logger.CtxWarn(requestContext(db), "Skipping course with malformed context path",
				"course_id", c.CourseID, "path", c.ContextPath, "error", err)
			continue
		}
		for _, id := range chain {
			if granting[id] {
				eligible[c.CourseID] = c.Fullname
				break
			}
		}
	}
	return eligible, nil
}

func handleCatalogError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrCategoryNotFound):
		return apperrors.ErrCategoryNotFound
	case errors.Is(err, repositories.ErrCourseNotFound):
		return apperrors.ErrCourseNotFound
	case errors.Is(err, repositories.ErrModuleNotFound):
		return apperrors.ErrModuleNotFound
	default:
		return apperrors.DatabaseError(err)
	}
}
