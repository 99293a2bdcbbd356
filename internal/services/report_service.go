package services

import (
	"time"

	"broadcast_backend/internal/auth"
	"broadcast_backend/internal/models"
	"broadcast_backend/internal/repositories"
	"broadcast_backend/internal/services/dto"
	"broadcast_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ReportService interface {
	GetBroadcastTable(db *gorm.DB, actor auth.Actor, query *dto.BroadcastTableQuery, page, pageSize int) (*dto.BroadcastTableResponse, error)
	GetAcknowledgementReport(db *gorm.DB, actor auth.Actor, broadcastID uint, page, pageSize int) (*dto.AckReportResponse, error)
}

type reportService struct {
	broadcastRepo  repositories.BroadcastRepository
	contextService ContextService
	checker        *auth.Checker
	clock          func() time.Time
}

func NewReportService(
	broadcastRepo repositories.BroadcastRepository,
	contextService ContextService,
	checker *auth.Checker,
) ReportService {
	return &reportService{
		broadcastRepo:  broadcastRepo,
		contextService: contextService,
		checker:        checker,
		clock:          time.Now,
	}
}

// GetBroadcastTable - таблица управления; доступна с правом создания на уровне сайта
func (s *reportService) GetBroadcastTable(db *gorm.DB, actor auth.Actor, query *dto.BroadcastTableQuery, page, pageSize int) (*dto.BroadcastTableResponse, error) {
	if err := s.checker.Require(db, actor, s.contextService.SiteContextID(), auth.CapabilityCreateBroadcasts); err != nil {
		return nil, err
	}

	rows, total, err := s.broadcastRepo.FindWithPagination(db, repositories.BroadcastTableCriteria{
		SortBy:   query.Sort,
		Order:    query.Order,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	now := s.clock().Unix()
	items := make([]dto.BroadcastTableRow, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.BroadcastTableRow{
			ID:          r.ID,
			Title:       r.Title,
			ContextID:   r.ContextID,
			ContextName: r.ContextName,
			ScopeLevel:  models.ContextLevel(r.ContextLevel).String(),
			LoggedIn:    r.LoggedIn,
			Mode:        int(r.Mode),
			TimeCreated: r.TimeCreated,
			TimeStart:   r.TimeStart,
			TimeEnd:     r.TimeEnd,
			Expired:     now > r.TimeEnd,
		})
	}

	return &dto.BroadcastTableResponse{
		Broadcasts: items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// GetAcknowledgementReport - broadcastID == 0 означает все рассылки
func (s *reportService) GetAcknowledgementReport(db *gorm.DB, actor auth.Actor, broadcastID uint, page, pageSize int) (*dto.AckReportResponse, error) {
	if err := s.checker.Require(db, actor, s.contextService.SiteContextID(), auth.CapabilityCreateBroadcasts); err != nil {
		return nil, err
	}
	if broadcastID > 0 {
		if _, err := s.broadcastRepo.FindByID(db, broadcastID); err != nil {
			return nil, handleBroadcastError(err)
		}
	}

	rows, total, err := s.broadcastRepo.FindAcknowledgementReport(db, broadcastID, page, pageSize)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	entries := make([]dto.AckReportEntry, 0, len(rows))
	for _, r := range rows {
		user := models.User{FirstName: r.FirstName, LastName: r.LastName, Email: r.Email}
		entries = append(entries, dto.AckReportEntry{
			ID:             r.ID,
			BroadcastID:    r.BroadcastID,
			BroadcastTitle: r.BroadcastTitle,
			UserID:         r.UserID,
			FullName:       user.FullName(),
			Email:          r.Email,
			ContextID:      r.ContextID,
			Location:       r.ContextName,
			AckTime:        r.AckTime,
		})
	}

	return &dto.AckReportResponse{
		Entries:    entries,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func totalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
