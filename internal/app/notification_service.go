// internal/app/notification_service.go
package app

import (
	"context"
	"errors"
	"fmt"

	"guardian_notifier/internal/domain/notification"
	"guardian_notifier/internal/domain/student"
	"guardian_notifier/internal/domain/system"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NotificationService sends a lesson follow-up to a student's guardian.
type NotificationService interface {
	// SendNotification runs one attempt for the snapshot with the given system config.
	// The returned error is the terminal failure, if any; the Result is never nil.
	SendNotification(ctx context.Context, s *student.Student, cfg system.Config) (*Result, error)
}

// Listener receives the side notifications of an attempt. Both methods may be called
// from goroutines other than the caller's.
type Listener interface {
	MessageSent(studentID string, delivered bool)
	ScoreChanged(studentID string)
}

// Result describes one notification attempt.
type Result struct {
	InvocationID string
	StudentID    string
	Lesson       string
	Phone        string
	URL          string
	Delivered    bool // the channel link was handed off
	Status       string
	Err          error

	scoringDone chan struct{}
	scoring     []ScoringOutcome
}

// WaitScoring blocks until the scoring side effects of the attempt have finished
// and returns their outcomes. It returns immediately when no scoring ran.
func (r *Result) WaitScoring() []ScoringOutcome {
	<-r.scoringDone
	return r.scoring
}

// NotificationServiceImpl implements the NotificationService interface.
type NotificationServiceImpl struct {
	composer    *MessageComposer
	dispatcher  *Dispatcher
	statusSync  *StatusSynchronizer
	coordinator *ScoringCoordinator
	board       *StatusBoard
	listener    Listener
	logger      *logrus.Entry
}

func NewNotificationServiceImpl(
	composer *MessageComposer,
	dispatcher *Dispatcher,
	statusSync *StatusSynchronizer,
	coordinator *ScoringCoordinator,
	board *StatusBoard,
	listener Listener, // optional
	logger *logrus.Entry,
) *NotificationServiceImpl {
	return &NotificationServiceImpl{
		composer:    composer,
		dispatcher:  dispatcher,
		statusSync:  statusSync,
		coordinator: coordinator,
		board:       board,
		listener:    listener,
		logger:      logger,
	}
}

// SendNotification validates, composes, dispatches and records one guardian notification.
// Scoring runs after the sent status is stored and outlives ctx cancellation.
func (s *NotificationServiceImpl) SendNotification(ctx context.Context, st *student.Student, cfg system.Config) (res *Result, err error) {
	lesson := student.Resolve(st)
	res = &Result{
		InvocationID: uuid.NewString(),
		Lesson:       lesson.Name,
		scoringDone:  make(chan struct{}),
	}
	if st == nil {
		close(res.scoringDone)
		s.finish(res, fmt.Errorf("%w: nil snapshot", notification.ErrIncompleteStudent))
		return res, res.Err
	}
	res.StudentID = st.ID.String()

	logCtx := s.logger.WithFields(logrus.Fields{
		"invocation_id": res.InvocationID,
		"student_id":    res.StudentID,
		"lesson":        res.Lesson,
	})

	scoringStarted := false
	synced := false
	defer func() {
		if !scoringStarted {
			close(res.scoringDone)
		}
		if r := recover(); r != nil {
			logCtx.WithField("panic", r).Error("Unexpected error while sending notification")
			if !synced {
				s.syncFailure(ctx, logCtx, res)
			}
			s.finish(res, fmt.Errorf("%w: %v", notification.ErrUnexpected, r))
			err = res.Err
		}
	}()

	fail := func(cause error) (*Result, error) {
		logCtx.WithError(cause).Warn("Notification not sent")
		synced = true
		s.syncFailure(ctx, logCtx, res)
		s.finish(res, cause)
		return res, cause
	}

	phone, err := NormalizePhone(st.ParentsPhone)
	if err != nil {
		return fail(err)
	}
	res.Phone = phone

	message, err := s.composer.Compose(st, lesson, cfg)
	if err != nil {
		return fail(err)
	}

	logCtx.WithFields(logrus.Fields{"phone": phone, "original_phone": st.ParentsPhone}).Info("Attempting to send WhatsApp message")
	link, result := s.dispatcher.Dispatch(ctx, phone, message)
	res.URL = link
	if result == LocallyBlocked {
		return fail(notification.ErrDispatchBlocked)
	}
	res.Delivered = true

	synced = true
	if err := s.statusSync.Sync(ctx, res.StudentID, res.Lesson, true); err != nil {
		// The guardian already has the message; only bookkeeping is off.
		s.finish(res, err)
		return res, err
	}
	if s.listener != nil {
		s.listener.MessageSent(res.StudentID, true)
	}

	if cfg.ScoringEnabled {
		scoringStarted = true
		go s.runScoring(context.WithoutCancel(ctx), res, lesson, logCtx)
	}
	s.finish(res, nil)
	return res, nil
}

func (s *NotificationServiceImpl) runScoring(ctx context.Context, res *Result, lesson student.ResolvedLesson, logCtx *logrus.Entry) {
	defer close(res.scoringDone)
	defer func() {
		if r := recover(); r != nil {
			logCtx.WithField("panic", r).Error("Unexpected error while calculating scores")
		}
	}()
	res.scoring = s.coordinator.Evaluate(ctx, res.StudentID, lesson, true, func() {
		if s.listener != nil {
			s.listener.ScoreChanged(res.StudentID)
		}
	})
}

func (s *NotificationServiceImpl) syncFailure(ctx context.Context, logCtx *logrus.Entry, res *Result) {
	if err := s.statusSync.Sync(ctx, res.StudentID, res.Lesson, false); err != nil {
		logCtx.WithError(err).Error("Failed to mark notification as failed")
	}
}

func (s *NotificationServiceImpl) finish(res *Result, err error) {
	res.Err = err
	res.Status = notification.StatusText(err)
	if res.StudentID != "" && s.board != nil {
		s.board.Publish(res.StudentID, res.Status)
	}
	if err != nil && !errors.Is(err, notification.ErrSyncFailed) {
		res.Delivered = false
	}
}
