package repositories

import (
	"errors"
	"fmt"

	"broadcast_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrBroadcastNotFound = errors.New("broadcast not found")
)

type BroadcastRepository interface {
	// Broadcast operations
	Create(db *gorm.DB, broadcast *models.Broadcast) error
	Update(db *gorm.DB, broadcast *models.Broadcast) error
	Delete(db *gorm.DB, id uint) error
	FindByID(db *gorm.DB, id uint) (*models.Broadcast, error)
	FindNames(db *gorm.DB) ([]BroadcastName, error)
	FindWithPagination(db *gorm.DB, criteria BroadcastTableCriteria) ([]BroadcastRow, int64, error)

	// Visibility
	FindVisible(db *gorm.DB, filter VisibilityFilter) ([]models.Broadcast, error)
	HasVisible(db *gorm.DB, filter VisibilityFilter) (bool, error)
	CountActive(db *gorm.DB, now int64) (int64, error)

	// Acknowledgement operations
	CreateAcknowledgement(db *gorm.DB, ack *models.BroadcastAcknowledgement) error
	CountAcknowledgements(db *gorm.DB, broadcastID uint) (int64, error)
	FindAcknowledgementReport(db *gorm.DB, broadcastID uint, page, pageSize int) ([]AckReportRow, int64, error)
	FindAcknowledgementsByUser(db *gorm.DB, userID uint) ([]models.BroadcastAcknowledgement, error)
	DeleteAcknowledgementsByUser(db *gorm.DB, userID uint) (int64, error)
	DeleteAcknowledgementsByContext(db *gorm.DB, contextID uint) (int64, error)
}

type BroadcastRepositoryImpl struct{}

// VisibilityFilter - входные данные фильтра видимости.
// LastLogin == 0 означает, что пользователь ни разу не входил.
type VisibilityFilter struct {
	ContextIDs []uint
	UserID     uint
	Now        int64
	LastLogin  int64
}

type BroadcastName struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

type BroadcastTableCriteria struct {
	SortBy   string
	Order    string
	Page     int
	PageSize int
}

// BroadcastRow - строка таблицы управления
type BroadcastRow struct {
	models.Broadcast
	ContextName  string `json:"context_name"`
	ContextLevel int    `json:"context_level"`
}

type AckReportRow struct {
	ID             uint   `json:"id"`
	BroadcastID    uint   `json:"broadcastid"`
	BroadcastTitle string `json:"broadcast_title"`
	UserID         uint   `json:"userid"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	ContextID      uint   `json:"contextid"`
	ContextName    string `json:"context_name"`
	AckTime        int64  `json:"acktime"`
}

var broadcastSortColumns = map[string]string{
	"id":           "broadcasts.id",
	"title":        "broadcasts.title",
	"time_created": "broadcasts.time_created",
	"time_start":   "broadcasts.time_start",
	"time_end":     "broadcasts.time_end",
}

func NewBroadcastRepository() BroadcastRepository {
	return &BroadcastRepositoryImpl{}
}

// ============================================================================
// Broadcast operations
// ============================================================================

func (r *BroadcastRepositoryImpl) Create(db *gorm.DB, broadcast *models.Broadcast) error {
	return db.Create(broadcast).Error
}

// Update перезаписывает все изменяемые поля; TimeCreated не трогаем
func (r *BroadcastRepositoryImpl) Update(db *gorm.DB, broadcast *models.Broadcast) error {
	result := db.Model(&models.Broadcast{}).
		Where("id = ?", broadcast.ID).
		Select("context_id", "title", "body", "body_format", "logged_in", "mode", "time_start", "time_end").
		Updates(broadcast)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&models.Broadcast{}).Where("id = ?", broadcast.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrBroadcastNotFound
		}
	}
	return nil
}

// Delete удаляет подтверждения и саму рассылку в одной транзакции
func (r *BroadcastRepositoryImpl) Delete(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("broadcast_id = ?", id).Delete(&models.BroadcastAcknowledgement{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Broadcast{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBroadcastNotFound
		}
		return nil
	})
}

func (r *BroadcastRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Broadcast, error) {
	var broadcast models.Broadcast
	if err := db.First(&broadcast, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBroadcastNotFound
		}
		return nil, err
	}
	return &broadcast, nil
}

func (r *BroadcastRepositoryImpl) FindNames(db *gorm.DB) ([]BroadcastName, error) {
	var names []BroadcastName
	err := db.Model(&models.Broadcast{}).
		Select("id", "title").
		Order("title ASC").Order("id ASC").
		Scan(&names).Error
	return names, err
}

func (r *BroadcastRepositoryImpl) FindWithPagination(db *gorm.DB, criteria BroadcastTableCriteria) ([]BroadcastRow, int64, error) {
	var rows []BroadcastRow
	var total int64

	if err := db.Model(&models.Broadcast{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := broadcastSortColumns[criteria.SortBy]
	if !ok {
		column = broadcastSortColumns["time_created"]
	}
	direction := "DESC"
	if criteria.Order == "asc" {
		direction = "ASC"
	}

	offset := (criteria.Page - 1) * criteria.PageSize
	err := db.Table("broadcasts").
		Select("broadcasts.*, contexts.name AS context_name, contexts.context_level AS context_level").
		Joins("LEFT JOIN contexts ON contexts.id = broadcasts.context_id").
		Order(fmt.Sprintf("%s %s", column, direction)).
		Order("broadcasts.id ASC").
		Limit(criteria.PageSize).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ============================================================================
// Visibility
// ============================================================================

// visibleScope - единственное место, где описан предикат видимости.
// FindVisible и HasVisible обязаны использовать только его.
func visibleScope(f VisibilityFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		q := db.Where("broadcasts.context_id IN ?", f.ContextIDs).
			Where("broadcasts.time_start < ? AND broadcasts.time_end > ?", f.Now, f.Now).
			Where("NOT EXISTS (SELECT 1 FROM broadcast_acknowledgements ack WHERE ack.broadcast_id = broadcasts.id AND ack.user_id = ?)", f.UserID)
		if f.LastLogin > 0 {
			// loggedin-рассылка скрыта, если пользователь вошел уже после ее начала
			q = q.Where("(broadcasts.logged_in = ? OR broadcasts.time_start >= ?)", false, f.LastLogin)
		}
		return q
	}
}

func (r *BroadcastRepositoryImpl) FindVisible(db *gorm.DB, filter VisibilityFilter) ([]models.Broadcast, error) {
	var broadcasts []models.Broadcast
	if len(filter.ContextIDs) == 0 {
		return broadcasts, nil
	}
	err := db.Model(&models.Broadcast{}).
		Scopes(visibleScope(filter)).
		Order("broadcasts.id ASC").
		Find(&broadcasts).Error
	return broadcasts, err
}

func (r *BroadcastRepositoryImpl) HasVisible(db *gorm.DB, filter VisibilityFilter) (bool, error) {
	if len(filter.ContextIDs) == 0 {
		return false, nil
	}
	var ids []uint
	err := db.Model(&models.Broadcast{}).
		Scopes(visibleScope(filter)).
		Limit(1).
		Pluck("broadcasts.id", &ids).Error
	if err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

// CountActive - сколько рассылок сейчас внутри окна показа, без учета контекста и пользователя
func (r *BroadcastRepositoryImpl) CountActive(db *gorm.DB, now int64) (int64, error) {
	var count int64
	err := db.Model(&models.Broadcast{}).
		Where("time_start < ? AND time_end > ?", now, now).
		Count(&count).Error
	return count, err
}

// ============================================================================
// Acknowledgement operations
// ============================================================================

// CreateAcknowledgement - повторное подтверждение тем же пользователем ничего не меняет
func (r *BroadcastRepositoryImpl) CreateAcknowledgement(db *gorm.DB, ack *models.BroadcastAcknowledgement) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "broadcast_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(ack).Error
}

func (r *BroadcastRepositoryImpl) CountAcknowledgements(db *gorm.DB, broadcastID uint) (int64, error) {
	var count int64
	err := db.Model(&models.BroadcastAcknowledgement{}).
		Where("broadcast_id = ?", broadcastID).
		Count(&count).Error
	return count, err
}

func (r *BroadcastRepositoryImpl) FindAcknowledgementReport(db *gorm.DB, broadcastID uint, page, pageSize int) ([]AckReportRow, int64, error) {
	var rows []AckReportRow
	var total int64

	base := func() *gorm.DB {
		q := db.Table("broadcast_acknowledgements AS ack")
		if broadcastID > 0 {
			q = q.Where("ack.broadcast_id = ?", broadcastID)
		}
		return q
	}

	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base().
		Select("ack.id, ack.broadcast_id, b.title AS broadcast_title, ack.user_id, " +
			"u.first_name, u.last_name, u.email, ack.context_id, c.name AS context_name, ack.ack_time").
		Joins("JOIN broadcasts b ON b.id = ack.broadcast_id").
		Joins("LEFT JOIN users u ON u.id = ack.user_id").
		Joins("LEFT JOIN contexts c ON c.id = ack.context_id").
		Order("ack.ack_time DESC").Order("ack.id DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *BroadcastRepositoryImpl) FindAcknowledgementsByUser(db *gorm.DB, userID uint) ([]models.BroadcastAcknowledgement, error) {
	var acks []models.BroadcastAcknowledgement
	err := db.Where("user_id = ?", userID).Order("ack_time ASC").Order("id ASC").Find(&acks).Error
	return acks, err
}

func (r *BroadcastRepositoryImpl) DeleteAcknowledgementsByUser(db *gorm.DB, userID uint) (int64, error) {
	result := db.Where("user_id = ?", userID).Delete(&models.BroadcastAcknowledgement{})
	return result.RowsAffected, result.Error
}

func (r *BroadcastRepositoryImpl) DeleteAcknowledgementsByContext(db *gorm.DB, contextID uint) (int64, error) {
	result := db.Where("context_id = ?", contextID).Delete(&models.BroadcastAcknowledgement{})
	return result.RowsAffected, result.Error
}
