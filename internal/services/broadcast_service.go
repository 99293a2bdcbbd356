package services

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"broadcast_backend/internal/auth"
	"broadcast_backend/internal/logger"
	"broadcast_backend/internal/metrics"
	"broadcast_backend/internal/models"
	"broadcast_backend/internal/repositories"
	"broadcast_backend/internal/services/dto"
	"broadcast_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type BroadcastService interface {
	// Administration
	CreateBroadcast(db *gorm.DB, actor auth.Actor, req *dto.BroadcastRequest) (uint, error)
	UpdateBroadcast(db *gorm.DB, actor auth.Actor, broadcastID uint, req *dto.BroadcastRequest) error
	DeleteBroadcast(db *gorm.DB, actor auth.Actor, broadcastID uint) error
	CopyBroadcast(db *gorm.DB, actor auth.Actor, broadcastID uint) (uint, error)
	GetBroadcastName(db *gorm.DB, actor auth.Actor, broadcastID uint) (string, error)
	GetBroadcastNames(db *gorm.DB, actor auth.Actor) ([]dto.BroadcastNameResponse, error)
	GetBroadcastFormData(db *gorm.DB, actor auth.Actor, broadcastID uint) (*dto.BroadcastFormData, error)

	// End users
	GetBroadcasts(db *gorm.DB, actor auth.Actor, contextID uint, now int64) ([]dto.BroadcastResponse, error)
	CheckBroadcasts(db *gorm.DB, actor auth.Actor, contextID uint, now int64) (*dto.CheckResponse, error)
	AcknowledgeBroadcast(db *gorm.DB, actor auth.Actor, contextID, broadcastID uint) error

	// Visibility core without capability checks
	VisibleBroadcasts(db *gorm.DB, contextID, userID uint, now int64) ([]models.Broadcast, error)
	HasVisibleBroadcasts(db *gorm.DB, contextID, userID uint, now int64) (bool, error)
}

// BroadcastSettings - параметры сервиса из секции broadcast конфига
type BroadcastSettings struct {
	Location       *time.Location
	PollMinSeconds int
	PollMaxSeconds int
}

type broadcastService struct {
	broadcastRepo  repositories.BroadcastRepository
	userRepo       repositories.UserRepository
	contextService ContextService
	checker        *auth.Checker
	settings       BroadcastSettings
	metrics        *metrics.Metrics
	clock          func() time.Time
}

func NewBroadcastService(
	broadcastRepo repositories.BroadcastRepository,
	userRepo repositories.UserRepository,
	contextService ContextService,
	checker *auth.Checker,
	settings BroadcastSettings,
) BroadcastService {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &broadcastService{
		broadcastRepo:  broadcastRepo,
		userRepo:       userRepo,
		contextService: contextService,
		checker:        checker,
		settings:       settings,
		metrics:        metrics.GetDefaultMetrics(),
		clock:          time.Now,
	}
}

// ============================================================================
// Administration
// ============================================================================

func (s *broadcastService) CreateBroadcast(db *gorm.DB, actor auth.Actor, req *dto.BroadcastRequest) (uint, error) {
	if err := checkTitle(req); err != nil {
		return 0, err
	}
	contextID, err := s.resolveScope(db, req)
	if err != nil {
		return 0, err
	}
	if err := s.checker.Require(db, actor, contextID, auth.CapabilityCreateBroadcasts); err != nil {
		return 0, err
	}

	broadcast := s.buildBroadcast(req, contextID)
	broadcast.TimeCreated = s.clock().Unix()

	if err := s.broadcastRepo.Create(db, broadcast); err != nil {
		return 0, apperrors.DatabaseError(err)
	}

	s.metrics.BroadcastsCreated.Inc()
	logger.CtxInfo(requestContext(db), "Broadcast created",
		"broadcast_id", broadcast.ID,
		"context_id", contextID,
		"created_by", actor.UserID,
	)
	return broadcast.ID, nil
}

func (s *broadcastService) UpdateBroadcast(db *gorm.DB, actor auth.Actor, broadcastID uint, req *dto.BroadcastRequest) error {
	if err := checkTitle(req); err != nil {
		return err
	}
	existing, err := s.findBroadcast(db, broadcastID)
	if err != nil {
		return err
	}
	// права нужны и на старую, и на новую область
	if err := s.checker.Require(db, actor, existing.ContextID, auth.CapabilityCreateBroadcasts); err != nil {
		return err
	}

	contextID, err := s.resolveScope(db, req)
	if err != nil {
		return err
	}
	if contextID != existing.ContextID {
		if err := s.checker.Require(db, actor, contextID, auth.CapabilityCreateBroadcasts); err != nil {
			return err
		}
	}

	broadcast := s.buildBroadcast(req, contextID)
	broadcast.ID = existing.ID
	broadcast.TimeCreated = existing.TimeCreated

	if err := s.broadcastRepo.Update(db, broadcast); err != nil {
		return handleBroadcastError(err)
	}

	s.metrics.BroadcastsUpdated.Inc()
	logger.CtxInfo(requestContext(db), "Broadcast updated", "broadcast_id", broadcastID, "updated_by", actor.UserID)
	return nil
}

func (s *broadcastService) DeleteBroadcast(db *gorm.DB, actor auth.Actor, broadcastID uint) error {
	existing, err := s.findBroadcast(db, broadcastID)
	if err != nil {
		return err
	}
	if err := s.checker.Require(db, actor, existing.ContextID, auth.CapabilityCreateBroadcasts); err != nil {
		return err
	}

	if err := s.broadcastRepo.Delete(db, broadcastID); err != nil {
		return handleBroadcastError(err)
	}

	s.metrics.BroadcastsDeleted.Inc()
	logger.CtxInfo(requestContext(db), "Broadcast deleted", "broadcast_id", broadcastID, "deleted_by", actor.UserID)
	return nil
}

// CopyBroadcast - действие "дублировать" таблицы управления
func (s *broadcastService) CopyBroadcast(db *gorm.DB, actor auth.Actor, broadcastID uint) (uint, error) {
	existing, err := s.findBroadcast(db, broadcastID)
	if err != nil {
		return 0, err
	}
	if err := s.checker.Require(db, actor, existing.ContextID, auth.CapabilityCreateBroadcasts); err != nil {
		return 0, err
	}

	clone := *existing
	clone.ID = 0
	clone.TimeCreated = s.clock().Unix()
	if err := s.broadcastRepo.Create(db, &clone); err != nil {
		return 0, apperrors.DatabaseError(err)
	}

	s.metrics.BroadcastsCreated.Inc()
	logger.CtxInfo(requestContext(db), "Broadcast copied", "source_id", broadcastID, "broadcast_id", clone.ID)
	return clone.ID, nil
}

func (s *broadcastService) GetBroadcastName(db *gorm.DB, actor auth.Actor, broadcastID uint) (string, error) {
	if err := s.checker.Require(db, actor, s.contextService.SiteContextID(), auth.CapabilityCreateBroadcasts); err != nil {
		return "", err
	}
	broadcast, err := s.findBroadcast(db, broadcastID)
	if err != nil {
		return "", err
	}
	return broadcast.Title, nil
}

// GetBroadcastNames - по заголовку, затем по id
func (s *broadcastService) GetBroadcastNames(db *gorm.DB, actor auth.Actor) ([]dto.BroadcastNameResponse, error) {
	if err := s.checker.Require(db, actor, s.contextService.SiteContextID(), auth.CapabilityCreateBroadcasts); err != nil {
		return nil, err
	}
	names, err := s.broadcastRepo.FindNames(db)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	resp := make([]dto.BroadcastNameResponse, 0, len(names))
	for _, n := range names {
		resp = append(resp, dto.BroadcastNameResponse{ID: n.ID, Title: n.Title})
	}
	return resp, nil
}

func (s *broadcastService) GetBroadcastFormData(db *gorm.DB, actor auth.Actor, broadcastID uint) (*dto.BroadcastFormData, error) {
	broadcast, err := s.findBroadcast(db, broadcastID)
	if err != nil {
		return nil, err
	}
	if err := s.checker.Require(db, actor, broadcast.ContextID, auth.CapabilityCreateBroadcasts); err != nil {
		return nil, err
	}

	form := &dto.BroadcastFormData{
		ID:        broadcast.ID,
		ContextID: broadcast.ContextID,
		Title:     broadcast.Title,
		Message: dto.BroadcastMessage{
			Text:   broadcast.Body,
			Format: broadcast.BodyFormat,
		},
		ScopeSite:  models.ScopeSite,
		ActiveFrom: s.dateParts(broadcast.TimeStart),
		Expiry:     s.dateParts(broadcast.TimeEnd),
		LoggedIn:   broadcast.LoggedIn,
		Mode:       broadcast.Mode,
	}

	ctx, err := s.contextService.GetContext(db, broadcast.ContextID)
	if err != nil {
		return nil, err
	}
	switch ctx.ContextLevel {
	case models.ContextLevelCategory:
		form.ScopeSite = models.ScopeCategory
		form.Categories = ctx.InstanceID
	case models.ContextLevelCourse:
		form.ScopeSite = models.ScopeCourse
		form.Courses = ctx.InstanceID
	}
	return form, nil
}

// ============================================================================
// End users
// ============================================================================

func (s *broadcastService) GetBroadcasts(db *gorm.DB, actor auth.Actor, contextID uint, now int64) ([]dto.BroadcastResponse, error) {
	if err := s.checker.Require(db, actor, contextID, auth.CapabilityViewBroadcasts); err != nil {
		return nil, err
	}

	broadcasts, err := s.VisibleBroadcasts(db, contextID, actor.UserID, now)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.BroadcastResponse, 0, len(broadcasts))
	for i := range broadcasts {
		resp = append(resp, buildBroadcastResponse(&broadcasts[i]))
	}
	s.metrics.BroadcastsServed.Add(float64(len(resp)))
	return resp, nil
}

// CheckBroadcasts разрешен и без сессии: гость проверяется как пользователь 0
func (s *broadcastService) CheckBroadcasts(db *gorm.DB, actor auth.Actor, contextID uint, now int64) (*dto.CheckResponse, error) {
	found, err := s.HasVisibleBroadcasts(db, contextID, actor.UserID, now)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordCheck(found)
	return &dto.CheckResponse{
		HasBroadcasts:   found,
		NextPollSeconds: s.nextPollInterval(),
	}, nil
}

func (s *broadcastService) AcknowledgeBroadcast(db *gorm.DB, actor auth.Actor, contextID, broadcastID uint) error {
	if _, err := s.contextService.GetContext(db, contextID); err != nil {
		return err
	}
	if _, err := s.findBroadcast(db, broadcastID); err != nil {
		return err
	}
	if err := s.checker.Require(db, actor, contextID, auth.CapabilityViewBroadcasts); err != nil {
		return err
	}

	ack := &models.BroadcastAcknowledgement{
		BroadcastID: broadcastID,
		UserID:      actor.UserID,
		ContextID:   contextID,
		AckTime:     s.clock().Unix(),
	}
	if err := s.broadcastRepo.CreateAcknowledgement(db, ack); err != nil {
		return apperrors.DatabaseError(err)
	}

	s.metrics.Acknowledgements.Inc()
	logger.CtxDebug(requestContext(db), "Broadcast acknowledged", "broadcast_id", broadcastID, "context_id", contextID)
	return nil
}

// ============================================================================
// Visibility core
// ============================================================================

func (s *broadcastService) VisibleBroadcasts(db *gorm.DB, contextID, userID uint, now int64) ([]models.Broadcast, error) {
	filter, err := s.buildFilter(db, contextID, userID, now)
	if err != nil {
		return nil, err
	}
	broadcasts, err := s.broadcastRepo.FindVisible(db, filter)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return broadcasts, nil
}

func (s *broadcastService) HasVisibleBroadcasts(db *gorm.DB, contextID, userID uint, now int64) (bool, error) {
	filter, err := s.buildFilter(db, contextID, userID, now)
	if err != nil {
		return false, err
	}
	found, err := s.broadcastRepo.HasVisible(db, filter)
	if err != nil {
		return false, apperrors.DatabaseError(err)
	}
	return found, nil
}

// buildFilter - общий вход для выборки и проверки, чтобы они не расходились
func (s *broadcastService) buildFilter(db *gorm.DB, contextID, userID uint, now int64) (repositories.VisibilityFilter, error) {
	chain, err := s.contextService.AncestorIDs(db, contextID)
	if err != nil {
		return repositories.VisibilityFilter{}, err
	}
	if now == 0 {
		now = s.clock().Unix()
	}

	var lastLogin int64
	if userID > 0 {
		user, err := s.userRepo.FindByID(db, userID)
		switch {
		case err == nil:
			lastLogin = user.LastLogin
		case errors.Is(err, repositories.ErrUserNotFound):
			// удаленный пользователь: фильтр по входу не применяется
		default:
			return repositories.VisibilityFilter{}, apperrors.DatabaseError(err)
		}
	}

	return repositories.VisibilityFilter{
		ContextIDs: chain,
		UserID:     userID,
		Now:        now,
		LastLogin:  lastLogin,
	}, nil
}

// ============================================================================
// Helpers
// ============================================================================

// resolveScope: категория -> контекст категории, курс -> контекст курса, иначе сайт
func (s *broadcastService) resolveScope(db *gorm.DB, req *dto.BroadcastRequest) (uint, error) {
	switch req.ScopeSite {
	case models.ScopeCategory:
		if req.Categories > 0 {
			ctx, err := s.contextService.CategoryContext(db, req.Categories)
			if err != nil {
				return 0, err
			}
			return ctx.ID, nil
		}
	case models.ScopeCourse:
		if req.Courses > 0 {
			ctx, err := s.contextService.CourseContext(db, req.Courses)
			if err != nil {
				return 0, err
			}
			return ctx.ID, nil
		}
	}
	return s.contextService.SiteContextID(), nil
}

// checkTitle - заголовок из одних пробелов считается пустым
func checkTitle(req *dto.BroadcastRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return apperrors.ValidationError(map[string]string{"title": "This field is required"})
	}
	return nil
}

func (s *broadcastService) buildBroadcast(req *dto.BroadcastRequest, contextID uint) *models.Broadcast {
	mode := req.Mode
	if mode == 0 {
		mode = models.BroadcastModeModal
	}
	return &models.Broadcast{
		ContextID:  contextID,
		Title:      req.Title,
		Body:       req.Message.Text,
		BodyFormat: req.Message.Format,
		LoggedIn:   req.LoggedIn,
		Mode:       mode,
		TimeStart:  req.ActiveFrom,
		TimeEnd:    req.Expiry,
	}
}

func (s *broadcastService) findBroadcast(db *gorm.DB, broadcastID uint) (*models.Broadcast, error) {
	broadcast, err := s.broadcastRepo.FindByID(db, broadcastID)
	if err != nil {
		return nil, handleBroadcastError(err)
	}
	return broadcast, nil
}

func (s *broadcastService) dateParts(ts int64) dto.DateParts {
	t := time.Unix(ts, 0).In(s.settings.Location)
	return dto.DateParts{
		Day:       t.Day(),
		Month:     int(t.Month()),
		Year:      t.Year(),
		Hour:      t.Hour(),
		Minute:    t.Minute(),
		Timestamp: ts,
	}
}

func (s *broadcastService) nextPollInterval() int {
	lo, hi := s.settings.PollMinSeconds, s.settings.PollMaxSeconds
	if hi <= lo {
		return lo
	}
	return lo + rand.IntN(hi-lo+1)
}

func buildBroadcastResponse(b *models.Broadcast) dto.BroadcastResponse {
	return dto.BroadcastResponse{
		ID:          b.ID,
		ContextID:   b.ContextID,
		Title:       b.Title,
		Body:        b.Body,
		BodyFormat:  b.BodyFormat,
		LoggedIn:    b.LoggedIn,
		Mode:        b.Mode,
		ShowModal:   b.Mode.ShowsModal(),
		ShowNotice:  b.Mode.ShowsNotification(),
		TimeCreated: b.TimeCreated,
		TimeStart:   b.TimeStart,
		TimeEnd:     b.TimeEnd,
	}
}

func handleBroadcastError(err error) error {
	if errors.Is(err, repositories.ErrBroadcastNotFound) {
		return apperrors.ErrBroadcastNotFound
	}
	return apperrors.DatabaseError(err)
}

// requestContext - контекст запроса, привязанный к db через WithContext
func requestContext(db *gorm.DB) context.Context {
	if db.Statement != nil && db.Statement.Context != nil {
		return db.Statement.Context
	}
	return context.Background()
}
