package repositories

import (
	"errors"
	"fmt"

	"broadcast_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrContextNotFound = errors.New("context not found")
)

type ContextRepository interface {
	FindByID(db *gorm.DB, id uint) (*models.Context, error)
	FindByIDs(db *gorm.DB, ids []uint) ([]models.Context, error)
	FindByInstance(db *gorm.DB, level models.ContextLevel, instanceID uint) (*models.Context, error)
	CreateSystem(db *gorm.DB, name string) (*models.Context, error)
	CreateChild(db *gorm.DB, parent *models.Context, level models.ContextLevel, instanceID uint, name string) (*models.Context, error)
}

type ContextRepositoryImpl struct{}

func NewContextRepository() ContextRepository {
	return &ContextRepositoryImpl{}
}

func (r *ContextRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Context, error) {
	var ctx models.Context
	if err := db.First(&ctx, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContextNotFound
		}
		return nil, err
	}
	return &ctx, nil
}

func (r *ContextRepositoryImpl) FindByIDs(db *gorm.DB, ids []uint) ([]models.Context, error) {
	var contexts []models.Context
	if len(ids) == 0 {
		return contexts, nil
	}
	err := db.Where("id IN ?", ids).Order("depth ASC").Find(&contexts).Error
	return contexts, err
}

func (r *ContextRepositoryImpl) FindByInstance(db *gorm.DB, level models.ContextLevel, instanceID uint) (*models.Context, error) {
	var ctx models.Context
	err := db.Where("context_level = ? AND instance_id = ?", level, instanceID).First(&ctx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContextNotFound
		}
		return nil, err
	}
	return &ctx, nil
}

// CreateSystem создает корневой контекст сайта (path "/<id>", depth 1)
func (r *ContextRepositoryImpl) CreateSystem(db *gorm.DB, name string) (*models.Context, error) {
	ctx := &models.Context{
		ContextLevel: models.ContextLevelSystem,
		InstanceID:   0,
		Depth:        1,
		Name:         name,
	}
	return ctx, db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ctx).Error; err != nil {
			return err
		}
		ctx.Path = fmt.Sprintf("/%d", ctx.ID)
		return tx.Model(ctx).Update("path", ctx.Path).Error
	})
}

// CreateChild - путь известен только после вставки, поэтому две операции в одной транзакции
func (r *ContextRepositoryImpl) CreateChild(db *gorm.DB, parent *models.Context, level models.ContextLevel, instanceID uint, name string) (*models.Context, error) {
	if parent == nil {
		return nil, ErrContextNotFound
	}
	ctx := &models.Context{
		ContextLevel: level,
		InstanceID:   instanceID,
		Depth:        parent.Depth + 1,
		Name:         name,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ctx).Error; err != nil {
			return err
		}
		ctx.Path = parent.ChildPath(ctx.ID)
		return tx.Model(ctx).Update("path", ctx.Path).Error
	})
	if err != nil {
		return nil, err
	}
	return ctx, nil
}
