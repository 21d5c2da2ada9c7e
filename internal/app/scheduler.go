package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Purger удаляет устаревшие сгенерированные расписания
type Purger interface {
	PurgeExpired(ctx context.Context, ttl time.Duration) (int64, error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	purger   Purger
	ttl      time.Duration
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
}

// NewScheduler создаёт новый планировщик.
// Очистка запускается раз в час, но не реже чем ttl.
func NewScheduler(purger Purger, ttl time.Duration, logger *zap.Logger) *Scheduler {
	interval := time.Hour
	if ttl < interval {
		interval = ttl
	}
	return &Scheduler{
		purger:   purger,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler",
		zap.Duration("ttl", s.ttl),
		zap.Duration("interval", s.interval))

	go s.runPurgeTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runPurgeTask периодически удаляет старые результаты генерации
func (s *Scheduler) runPurgeTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.purge(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.purge(ctx)
		case <-s.stopChan:
			s.logger.Info("Purge task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Purge task cancelled")
			return
		}
	}
}

func (s *Scheduler) purge(ctx context.Context) {
	removed, err := s.purger.PurgeExpired(ctx, s.ttl)
	if err != nil {
		s.logger.Error("Failed to purge generated schedules", zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Info("Purged generated schedules", zap.Int64("rows", removed))
	}
}
