package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// AnnouncementRefresher recomputes the cached announcement.
type AnnouncementRefresher interface {
	RefreshAnnouncement(ctx context.Context) (string, error)
}

type Scheduler struct {
	cron      *cron.Cron
	refresher AnnouncementRefresher
	logger    *slog.Logger
	timeout   time.Duration
}

func NewScheduler(refresher AnnouncementRefresher, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		refresher: refresher,
		logger:    logger,
		timeout:   30 * time.Second,
	}
}

// Start registers the announcement refresh on schedule (seconds-enabled cron
// syntax) and starts the scheduler.
func (s *Scheduler) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, s.RefreshAnnouncement)
	if err != nil {
		return err
	}

	s.logger.Info("cron scheduler started", "announcement_schedule", schedule)
	s.cron.Start()
	return nil
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) RefreshAnnouncement() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	announcement, err := s.refresher.RefreshAnnouncement(ctx)
	if err != nil {
		s.logger.Error("announcement refresh failed", "error", err)
		return
	}
	s.logger.Debug("announcement refresh done", "announcement", announcement)
}
