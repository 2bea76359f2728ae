package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper — то, что умеет закрывать простаивающие экраны
type Sweeper interface {
	SweepIdle() int
}

type Scheduler struct {
	sweeper  Sweeper
	interval time.Duration
	logger   *slog.Logger
}

// NewScheduler — конструктор планировщика очистки простаивающих экранов
func NewScheduler(sweeper Sweeper, interval time.Duration, logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger,
	}
}

// Start — запускает периодическое выполнение задачи до остановки контекста
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("scheduler started")
	s.logger.Debug("scheduler interval configured", slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runOnce()
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		}
	}
}

// runOnce — одна итерация: закрыть экраны без активности
func (s *Scheduler) runOnce() {
	started := time.Now()
	n := s.sweeper.SweepIdle()
	s.logger.Debug("tick: sweep completed",
		slog.Int("unmounted", n),
		slog.Duration("duration", time.Since(started)),
	)
}
