package telegram

import (
	"context"
	"errors"
	"testing"
	"time"

	"guardian_notifier/internal/app"
	"guardian_notifier/internal/domain/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOutcomes struct {
	list []*notification.DispatchOutcome
	err  error
}

func (s stubOutcomes) UpsertDispatchOutcome(context.Context, string, string, bool) error { return nil }

func (s stubOutcomes) ListDispatchOutcomes(context.Context, string, []string) ([]*notification.DispatchOutcome, error) {
	return s.list, s.err
}

func TestStatusReport(t *testing.T) {
	board := app.NewStatusBoard(time.Minute)
	board.Publish("42", notification.StatusSent)
	outcomes := stubOutcomes{list: []*notification.DispatchOutcome{
		{StudentID: "42", Lesson: "L1", Delivered: true, UpdatedAt: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)},
		{StudentID: "42", Lesson: "L2", Delivered: false, UpdatedAt: time.Date(2024, 3, 8, 9, 0, 0, 0, time.UTC)},
	}}

	report, err := statusReport(context.Background(), "42", board, outcomes)
	require.NoError(t, err)
	assert.Equal(t, "Student 42\nLatest: "+notification.StatusSent+"\n• L1: sent (2024-03-01 10:30)\n• L2: failed (2024-03-08 09:00)", report)
}

func TestStatusReport_Empty(t *testing.T) {
	report, err := statusReport(context.Background(), "7", app.NewStatusBoard(time.Minute), stubOutcomes{})
	require.NoError(t, err)
	assert.Equal(t, "Student 7\nNo stored outcomes.", report)
}

func TestStatusReport_Error(t *testing.T) {
	_, err := statusReport(context.Background(), "7", app.NewStatusBoard(time.Minute), stubOutcomes{err: errors.New("db down")})
	assert.Error(t, err)
}
