package repositories

import (
	"errors"

	"broadcast_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("course category not found")
	ErrCourseNotFound   = errors.New("course not found")
	ErrModuleNotFound   = errors.New("course module not found")
)

type CatalogRepository interface {
	CreateCategory(db *gorm.DB, category *models.CourseCategory) error
	FindCategoryByID(db *gorm.DB, id uint) (*models.CourseCategory, error)
	CreateCourse(db *gorm.DB, course *models.Course) error
	FindCourseByID(db *gorm.DB, id uint) (*models.Course, error)
	FindCoursesWithContext(db *gorm.DB) ([]CourseContextRow, error)
	CreateModule(db *gorm.DB, module *models.CourseModule) error
	FindModuleByID(db *gorm.DB, id uint) (*models.CourseModule, error)
}

// CourseContextRow - курс вместе с id и путем его контекста
type CourseContextRow struct {
	CourseID    uint
	Fullname    string
	ContextID   uint
	ContextPath string
}

type CatalogRepositoryImpl struct{}

func NewCatalogRepository() CatalogRepository {
	return &CatalogRepositoryImpl{}
}

func (r *CatalogRepositoryImpl) CreateCategory(db *gorm.DB, category *models.CourseCategory) error {
	return db.Create(category).Error
}

func (r *CatalogRepositoryImpl) FindCategoryByID(db *gorm.DB, id uint) (*models.CourseCategory, error) {
	var category models.CourseCategory
	if err := db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CatalogRepositoryImpl) CreateCourse(db *gorm.DB, course *models.Course) error {
	return db.Create(course).Error
}

func (r *CatalogRepositoryImpl) FindCourseByID(db *gorm.DB, id uint) (*models.Course, error) {
	var course models.Course
	if err := db.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (r *CatalogRepositoryImpl) FindCoursesWithContext(db *gorm.DB) ([]CourseContextRow, error) {
	var rows []CourseContextRow
	err := db.Table("courses").
		Select("courses.id AS course_id, courses.fullname, contexts.id AS context_id, contexts.path AS context_path").
		Joins("JOIN contexts ON contexts.instance_id = courses.id AND contexts.context_level = ?", models.ContextLevelCourse).
		Order("courses.fullname ASC").Order("courses.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *CatalogRepositoryImpl) CreateModule(db *gorm.DB, module *models.CourseModule) error {
	return db.Create(module).Error
}

func (r *CatalogRepositoryImpl) FindModuleByID(db *gorm.DB, id uint) (*models.CourseModule, error) {
	var module models.CourseModule
	if err := db.First(&module, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModuleNotFound
		}
		return nil, err
	}
	return &module, nil
}
