package scheduler

import (
	"context"
	"time"

	"guardian_notifier/internal/domain/system"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ConfigRefresher is satisfied by app.CachedConfigProvider.
type ConfigRefresher interface {
	Refresh(ctx context.Context) system.Config
}

// ConfigRefreshScheduler reloads the cached system configuration on a cron spec,
// so display name and scoring toggle changes reach new invocations without a restart.
type ConfigRefreshScheduler struct {
	cronEngine *cron.Cron
	refresher  ConfigRefresher
	logger     *logrus.Entry
	cronSpec   string
	timeout    time.Duration
}

func NewConfigRefreshScheduler(refresher ConfigRefresher, logger *logrus.Entry, cronSpec string) *ConfigRefreshScheduler {
	return &ConfigRefreshScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)),
		refresher:  refresher,
		logger:     logger,
		cronSpec:   cronSpec, // e.g., "*/1 * * * *" (every minute)
		timeout:    30 * time.Second,
	}
}

// Start registers the job and starts the engine. An invalid spec is returned, not fatal.
func (s *ConfigRefreshScheduler) Start() error {
	s.logger.Info("Starting config refresh scheduler...")

	if _, err := s.cronEngine.AddFunc(s.cronSpec, s.runRefresh); err != nil {
		return err
	}

	s.cronEngine.Start()
	s.logger.WithField("cron_spec", s.cronSpec).Info("Config refresh scheduler started.")
	return nil
}

func (s *ConfigRefreshScheduler) runRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	cfg := s.refresher.Refresh(ctx)
	s.logger.WithFields(logrus.Fields{
		"display_name":    cfg.DisplayName,
		"scoring_enabled": cfg.ScoringEnabled,
	}).Debug("Cron job refreshed system config.")
}

func (s *ConfigRefreshScheduler) Stop() {
	s.logger.Info("Stopping config refresh scheduler...")
	ctx := s.cronEngine.Stop() // waits for running jobs
	<-ctx.Done()
	s.logger.Info("Config refresh scheduler gracefully stopped.")
}
