package repositories

import (
	"errors"

	"broadcast_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	// User operations
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id uint) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	UpdateLastLogin(db *gorm.DB, userID uint, lastLogin int64) error

	// Role assignment operations
	AssignRole(db *gorm.DB, assignment *models.RoleAssignment) error
	FindRolesInContexts(db *gorm.DB, userID uint, contextIDs []uint) ([]models.RoleAssignment, error)
	FindRoles(db *gorm.DB, userID uint) ([]models.RoleAssignment, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUserAlreadyExists
	}
	return db.Create(user).Error
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) UpdateLastLogin(db *gorm.DB, userID uint, lastLogin int64) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Update("last_login", lastLogin)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// AssignRole идемпотентна: повторное назначение той же роли игнорируется
func (r *UserRepositoryImpl) AssignRole(db *gorm.DB, assignment *models.RoleAssignment) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "context_id"}, {Name: "role"}},
		DoNothing: true,
	}).Create(assignment).Error
}

func (r *UserRepositoryImpl) FindRolesInContexts(db *gorm.DB, userID uint, contextIDs []uint) ([]models.RoleAssignment, error) {
	var assignments []models.RoleAssignment
	if len(contextIDs) == 0 {
		return assignments, nil
	}
	err := db.Where("user_id = ? AND context_id IN ?", userID, contextIDs).Find(&assignments).Error
	return assignments, err
}

func (r *UserRepositoryImpl) FindRoles(db *gorm.DB, userID uint) ([]models.RoleAssignment, error) {
	var assignments []models.RoleAssignment
	err := db.Where("user_id = ?", userID).Order("context_id ASC").Find(&assignments).Error
	return assignments, err
}
