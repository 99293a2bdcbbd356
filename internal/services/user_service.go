package services

import (
	"errors"
	"time"

	"broadcast_backend/internal/auth"
	"broadcast_backend/internal/logger"
	"broadcast_backend/internal/models"
	"broadcast_backend/internal/repositories"
	"broadcast_backend/internal/services/dto"
	"broadcast_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	CreateUser(db *gorm.DB, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(db *gorm.DB, userID uint) (*dto.UserResponse, error)
	AssignRole(db *gorm.DB, req *dto.AssignRoleRequest) error
}

type userService struct {
	userRepo       repositories.UserRepository
	contextService ContextService
}

func NewUserService(userRepo repositories.UserRepository, contextService ContextService) UserService {
	return &userService{
		userRepo:       userRepo,
		contextService: contextService,
	}
}

func (s *userService) CreateUser(db *gorm.DB, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ValidationError(map[string]string{"password": err.Error()})
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		IsSiteAdmin:  req.IsSiteAdmin,
		TimeCreated:  time.Now().Unix(),
	}
	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.DatabaseError(err)
	}

	logger.CtxInfo(requestContext(db), "User created", "new_user_id", user.ID, "site_admin", user.IsSiteAdmin)
	resp := buildUserResponse(user)
	return &resp, nil
}

func (s *userService) GetUser(db *gorm.DB, userID uint) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleUserError(err)
	}
	resp := buildUserResponse(user)
	return &resp, nil
}

func (s *userService) AssignRole(db *gorm.DB, req *dto.AssignRoleRequest) error {
	if _, err := s.userRepo.FindByID(db, req.UserID); err != nil {
		return handleUserError(err)
	}
	if _, err := s.contextService.GetContext(db, req.ContextID); err != nil {
		return err
	}

	assignment := &models.RoleAssignment{
		UserID:    req.UserID,
		ContextID: req.ContextID,
		Role:      req.Role,
	}
	if err := s.userRepo.AssignRole(db, assignment); err != nil {
		return apperrors.DatabaseError(err)
	}

	logger.CtxInfo(requestContext(db), "Role assigned", "target_user_id", req.UserID, "context_id", req.ContextID, "role", req.Role)
	return nil
}

func buildUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		IsSiteAdmin: u.IsSiteAdmin,
		LastLogin:   u.LastLogin,
		TimeCreated: u.TimeCreated,
	}
}

func handleUserError(err error) error {
	if errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.ErrUserNotFound
	}
	return apperrors.DatabaseError(err)
}
