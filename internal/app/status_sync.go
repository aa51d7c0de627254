// internal/app/status_sync.go
package app

import (
	"context"
	"fmt"

	"guardian_notifier/internal/domain/notification"

	"github.com/sirupsen/logrus"
)

// StatusSynchronizer records whether a notification attempt was handed off.
type StatusSynchronizer struct {
	repo   notification.Repository
	logger *logrus.Entry
}

func NewStatusSynchronizer(repo notification.Repository, logger *logrus.Entry) *StatusSynchronizer {
	return &StatusSynchronizer{repo: repo, logger: logger}
}

// Sync upserts the outcome for (studentID, lesson). Failures are wrapped in ErrSyncFailed.
func (s *StatusSynchronizer) Sync(ctx context.Context, studentID, lesson string, delivered bool) error {
	logCtx := s.logger.WithFields(logrus.Fields{
		"student_id": studentID,
		"lesson":     lesson,
		"delivered":  delivered,
	})
	if err := s.repo.UpsertDispatchOutcome(ctx, studentID, lesson, delivered); err != nil {
		logCtx.WithError(err).Error("Failed to update message state")
		return fmt.Errorf("%w: %w", notification.ErrSyncFailed, err)
	}
	logCtx.Info("Message state updated")
	return nil
}
