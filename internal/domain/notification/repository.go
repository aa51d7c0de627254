// internal/domain/notification/repository.go
package notification

import (
	"context"
)

// Repository persists DispatchOutcome rows.
type Repository interface {
	// UpsertDispatchOutcome writes the outcome for (studentID, lesson), last write wins.
	UpsertDispatchOutcome(ctx context.Context, studentID, lesson string, delivered bool) error
	// ListDispatchOutcomes returns the stored outcomes of a student, optionally narrowed to lessons.
	ListDispatchOutcomes(ctx context.Context, studentID string, lessons []string) ([]*DispatchOutcome, error)
}
