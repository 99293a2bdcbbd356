package services

import (
	"errors"
	"time"

	"broadcast_backend/internal/auth"
	"broadcast_backend/internal/logger"
	"broadcast_backend/internal/repositories"
	"broadcast_backend/internal/services/dto"
	"broadcast_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	ParseToken(token string) (*auth.Claims, error)
}

type AuthServiceImpl struct {
	userRepo  repositories.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
	clock     func() time.Time
}

func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, jwtTTL time.Duration) AuthService {
	return &AuthServiceImpl{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
		clock:     time.Now,
	}
}

// Login проверяет пароль, обновляет last_login и выдает токен.
// last_login участвует в фильтре loggedin-рассылок.
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.DatabaseError(err)
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.CtxWarn(requestContext(db), "Login failed: wrong password", "target_user_id", user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}

	now := s.clock().Unix()
	if err := s.userRepo.UpdateLastLogin(db, user.ID, now); err != nil {
		return nil, handleUserError(err)
	}
	user.LastLogin = now

	token, expiresAt, err := auth.GenerateToken(user.ID, user.IsSiteAdmin, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(requestContext(db), "User logged in", "target_user_id", user.ID)
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt.Unix(),
		User:        buildUserResponse(user),
	}, nil
}

func (s *AuthServiceImpl) ParseToken(token string) (*auth.Claims, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, apperrors.ErrInvalidToken.WithError(err)
	}
	return claims, nil
}
