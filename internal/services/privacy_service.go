package services

import (
	"broadcast_backend/internal/logger"
	"broadcast_backend/internal/repositories"
	"broadcast_backend/internal/services/dto"
	"broadcast_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// PrivacyService - экспорт и удаление персональных данных (подтверждений)
type PrivacyService interface {
	ExportUserData(db *gorm.DB, userID uint) (*dto.UserDataExport, error)
	DeleteUserData(db *gorm.DB, userID uint) (int64, error)
	DeleteContextData(db *gorm.DB, contextID uint) (int64, error)
}

type privacyService struct {
	broadcastRepo  repositories.BroadcastRepository
	userRepo       repositories.UserRepository
	contextService ContextService
}

func NewPrivacyService(
	broadcastRepo repositories.BroadcastRepository,
	userRepo repositories.UserRepository,
	contextService ContextService,
) PrivacyService {
	return &privacyService{
		broadcastRepo:  broadcastRepo,
		userRepo:       userRepo,
		contextService: contextService,
	}
}

func (s *privacyService) ExportUserData(db *gorm.DB, userID uint) (*dto.UserDataExport, error) {
	if _, err := s.userRepo.FindByID(db, userID); err != nil {
		return nil, handleUserError(err)
	}

	acks, err := s.broadcastRepo.FindAcknowledgementsByUser(db, userID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	export := &dto.UserDataExport{
		UserID:           userID,
		Acknowledgements: make([]dto.AckExportEntry, 0, len(acks)),
	}
	for _, a := range acks {
		export.Acknowledgements = append(export.Acknowledgements, dto.AckExportEntry{
			BroadcastID: a.BroadcastID,
			UserID:      a.UserID,
			ContextID:   a.ContextID,
			AckTime:     a.AckTime,
		})
	}
	return export, nil
}

// DeleteUserData не требует существования пользователя: данные удаленного аккаунта тоже стираются
func (s *privacyService) DeleteUserData(db *gorm.DB, userID uint) (int64, error) {
	deleted, err := s.broadcastRepo.DeleteAcknowledgementsByUser(db, userID)
	if err != nil {
		return 0, apperrors.DatabaseError(err)
	}
	logger.CtxInfo(requestContext(db), "User acknowledgements erased", "target_user_id", userID, "deleted", deleted)
	return deleted, nil
}

func (s *privacyService) DeleteContextData(db *gorm.DB, contextID uint) (int64, error) {
	if _, err := s.contextService.GetContext(db, contextID); err != nil {
		return 0, err
	}
	deleted, err := s.broadcastRepo.DeleteAcknowledgementsByContext(db, contextID)
	if err != nil {
		return 0, apperrors.DatabaseError(err)
	}
	logger.CtxInfo(requestContext(db), "Context acknowledgements erased", "context_id", contextID, "deleted", deleted)
	return deleted, nil
}
