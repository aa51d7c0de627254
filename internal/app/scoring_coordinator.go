// internal/app/scoring_coordinator.go
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"guardian_notifier/internal/domain/scoring"
	"guardian_notifier/internal/domain/student"

	"github.com/sirupsen/logrus"
)

// ScoringOutcome reports what happened to one scoring request.
type ScoringOutcome struct {
	Type    scoring.Type
	Request scoring.Request
	Err     error // wraps ErrScoringRequestFailed on failure
}

// ScoringCoordinator decides which scoring requests follow a delivered notification.
type ScoringCoordinator struct {
	history scoring.HistoryRepository
	client  scoring.Client
	logger  *logrus.Entry
}

func NewScoringCoordinator(history scoring.HistoryRepository, client scoring.Client, logger *logrus.Entry) *ScoringCoordinator {
	return &ScoringCoordinator{history: history, client: client, logger: logger}
}

// Evaluate issues at most one absence and one homework request, concurrently.
// Failures stay inside: they are logged and reported in the returned outcomes only.
// onScoreChanged runs once per successful request and may be nil.
func (c *ScoringCoordinator) Evaluate(ctx context.Context, studentID string, lesson student.ResolvedLesson, enabled bool, onScoreChanged func()) []ScoringOutcome {
	if !enabled {
		return nil
	}

	var checks []func() ScoringOutcome
	if !lesson.Attended {
		checks = append(checks, func() ScoringOutcome {
			prev := c.previousValue(ctx, studentID, scoring.TypeAttendance, lesson.Name, "status")
			return c.submit(ctx, scoring.Request{
				StudentID: studentID,
				Type:      scoring.TypeAttendance,
				Lesson:    lesson.Name,
				Data:      map[string]interface{}{"status": "absent", "previousStatus": prev},
			}, onScoreChanged)
		})
	}
	if lesson.HwDone == student.HomeworkNotDone {
		checks = append(checks, func() ScoringOutcome {
			prev := c.previousValue(ctx, studentID, scoring.TypeHomework, lesson.Name, "hwDone")
			return c.submit(ctx, scoring.Request{
				StudentID: studentID,
				Type:      scoring.TypeHomework,
				Lesson:    lesson.Name,
				Data:      map[string]interface{}{"hwDone": false, "previousHwDone": prev},
			}, onScoreChanged)
		})
	}

	outcomes := make([]ScoringOutcome, len(checks))
	var wg sync.WaitGroup
	for i, check := range checks {
		wg.Add(1)
		go func(i int, check func() ScoringOutcome) {
			defer wg.Done()
			outcomes[i] = check()
		}(i, check)
	}
	wg.Wait()
	return outcomes
}

// previousValue returns data[key] of the last history entry, or nil when there is none
// or the lookup failed.
func (c *ScoringCoordinator) previousValue(ctx context.Context, studentID string, t scoring.Type, lesson, key string) interface{} {
	entry, err := c.history.GetLastHistory(ctx, studentID, t, lesson)
	if err != nil {
		if !errors.Is(err, scoring.ErrHistoryNotFound) {
			c.logger.WithFields(logrus.Fields{
				"student_id":   studentID,
				"scoring_type": t,
				"lesson":       lesson,
			}).WithError(fmt.Errorf("%w: %w", scoring.ErrHistoryLookupFailed, err)).Warn("Error getting scoring history")
		}
		return nil
	}
	if entry == nil || entry.Data == nil {
		return nil
	}
	return entry.Data[key]
}

func (c *ScoringCoordinator) submit(ctx context.Context, req scoring.Request, onScoreChanged func()) ScoringOutcome {
	logCtx := c.logger.WithFields(logrus.Fields{
		"student_id":   req.StudentID,
		"scoring_type": req.Type,
		"lesson":       req.Lesson,
	})
	if err := c.client.SubmitScoringRequest(ctx, req); err != nil {
		err = fmt.Errorf("%w: %w", scoring.ErrScoringRequestFailed, err)
		logCtx.WithError(err).Error("Error calculating score")
		return ScoringOutcome{Type: req.Type, Request: req, Err: err}
	}
	logCtx.Info("Score calculated")
	if onScoreChanged != nil {
		onScoreChanged()
	}
	return ScoringOutcome{Type: req.Type, Request: req}
}
