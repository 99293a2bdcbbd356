package services

import (
	"errors"
	"fmt"
	"time"

	"broadcast_backend/internal/metrics"
	"broadcast_backend/internal/models"
	"broadcast_backend/internal/repositories"
	"broadcast_backend/pkg/apperrors"

	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

type ContextService interface {
	GetContext(db *gorm.DB, contextID uint) (*models.Context, error)
	AncestorIDs(db *gorm.DB, contextID uint) ([]uint, error)
	SiteContextID() uint
	CategoryContext(db *gorm.DB, categoryID uint) (*models.Context, error)
	CourseContext(db *gorm.DB, courseID uint) (*models.Context, error)
	ContextNames(db *gorm.DB, ids []uint) (map[uint]string, error)
}

type contextService struct {
	contextRepo   repositories.ContextRepository
	siteContextID uint
	// контексты только добавляются, поэтому закешированная цепочка не устаревает
	ancestors *gocache.Cache
	metrics   *metrics.Metrics
}

func NewContextService(contextRepo repositories.ContextRepository, siteContextID uint, cacheTTL time.Duration) ContextService {
	return &contextService{
		contextRepo:   contextRepo,
		siteContextID: siteContextID,
		ancestors:     gocache.New(cacheTTL, 2*cacheTTL),
		metrics:       metrics.GetDefaultMetrics(),
	}
}

func (s *contextService) SiteContextID() uint {
	return s.siteContextID
}

func (s *contextService) GetContext(db *gorm.DB, contextID uint) (*models.Context, error) {
	ctx, err := s.contextRepo.FindByID(db, contextID)
	if err != nil {
		return nil, handleContextError(err)
	}
	return ctx, nil
}

// AncestorIDs возвращает id от корня до самого контекста включительно
func (s *contextService) AncestorIDs(db *gorm.DB, contextID uint) ([]uint, error) {
	key := fmt.Sprintf("ancestors:%d", contextID)
	if cached, found := s.ancestors.Get(key); found {
		s.metrics.RecordCacheLookup(true)
		return append([]uint(nil), cached.([]uint)...), nil
	}
	s.metrics.RecordCacheLookup(false)

	ctx, err := s.contextRepo.FindByID(db, contextID)
	if err != nil {
		return nil, handleContextError(err)
	}
	ids, err := ctx.AncestorIDs()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.ancestors.SetDefault(key, ids)
	return append([]uint(nil), ids...), nil
}

func (s *contextService) CategoryContext(db *gorm.DB, categoryID uint) (*models.Context, error) {
	ctx, err := s.contextRepo.FindByInstance(db, models.ContextLevelCategory, categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrContextNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}
	return ctx, nil
}

func (s *contextService) CourseContext(db *gorm.DB, courseID uint) (*models.Context, error) {
	ctx, err := s.contextRepo.FindByInstance(db, models.ContextLevelCourse, courseID)
	if err != nil {
		if errors.Is(err, repositories.ErrContextNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}
	return ctx, nil
}

func (s *contextService) ContextNames(db *gorm.DB, ids []uint) (map[uint]string, error) {
	contexts, err := s.contextRepo.FindByIDs(db, ids)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	names := make(map[uint]string, len(contexts))
	for _, c := range contexts {
		names[c.ID] = c.Name
	}
	return names, nil
}

func handleContextError(err error) error {
	if errors.Is(err, repositories.ErrContextNotFound) {
		return apperrors.ErrContextNotFound
	}
	return apperrors.DatabaseError(err)
}
