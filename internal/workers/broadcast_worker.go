package workers

import (
	"context"
	"time"

	"broadcast_backend/internal/logger"
	"broadcast_backend/internal/metrics"
	"broadcast_backend/internal/repositories"

	"gorm.io/gorm"
)

// BroadcastWorker периодически пересчитывает число активных рассылок для /metrics
type BroadcastWorker struct {
	db            *gorm.DB
	broadcastRepo repositories.BroadcastRepository
	metrics       *metrics.Metrics
	interval      time.Duration
	now           func() time.Time
}

func NewBroadcastWorker(db *gorm.DB, broadcastRepo repositories.BroadcastRepository, interval time.Duration) *BroadcastWorker {
	return &BroadcastWorker{
		db:            db,
		broadcastRepo: broadcastRepo,
		metrics:       metrics.GetDefaultMetrics(),
		interval:      interval,
		now:           time.Now,
	}
}

// Start запускает фоновый пересчет; останавливается по отмене ctx
func (w *BroadcastWorker) Start(ctx context.Context) {
	logger.Debug("Broadcast worker started", "interval", w.interval)
	go w.refreshActive(ctx)
}

func (w *BroadcastWorker) refreshActive(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.RefreshOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Broadcast worker stopped")
			return
		case <-ticker.C:
			w.RefreshOnce(ctx)
		}
	}
}

// RefreshOnce - один проход пересчета, возвращает текущее значение
func (w *BroadcastWorker) RefreshOnce(ctx context.Context) int64 {
	start := time.Now()
	count, err := w.broadcastRepo.CountActive(w.db.WithContext(ctx), w.now().Unix())
	logger.DBLog("count_active_broadcasts", time.Since(start), err)
	if err != nil {
		return 0
	}
	w.metrics.ActiveBroadcasts.Set(float64(count))
	return count
}
