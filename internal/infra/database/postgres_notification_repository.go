// internal/infra/database/postgres_notification_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"guardian_notifier/internal/domain/notification"

	"github.com/lib/pq" // For pq.Array
)

// PostgresNotificationRepository stores dispatch outcomes in student_message_states.
type PostgresNotificationRepository struct {
	db *sql.DB
}

var _ notification.Repository = (*PostgresNotificationRepository)(nil)

func NewPostgresNotificationRepository(db *sql.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

// UpsertDispatchOutcome relies on the (student_id, lesson) primary key for atomicity,
// so repeated calls with the same arguments leave a single identical row.
func (r *PostgresNotificationRepository) UpsertDispatchOutcome(ctx context.Context, studentID, lesson string, delivered bool) error {
	query := `INSERT INTO student_message_states (student_id, lesson, message_state, updated_at)
               VALUES ($1, $2, $3, NOW())
               ON CONFLICT (student_id, lesson)
               DO UPDATE SET message_state = EXCLUDED.message_state, updated_at = NOW()`
	if _, err := r.db.ExecContext(ctx, query, studentID, lesson, delivered); err != nil {
		return fmt.Errorf("error upserting message state (student %s, lesson %s): %w", studentID, lesson, err)
	}
	return nil
}

func (r *PostgresNotificationRepository) ListDispatchOutcomes(ctx context.Context, studentID string, lessons []string) ([]*notification.DispatchOutcome, error) {
	query := `SELECT student_id, lesson, message_state, updated_at
               FROM student_message_states
               WHERE student_id = $1`
	args := []interface{}{studentID}
	if len(lessons) > 0 {
		query += ` AND lesson = ANY($2::text[])`
		args = append(args, pq.Array(lessons))
	}
	query += ` ORDER BY lesson`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying message states: %w", err)
	}
	defer rows.Close()

	outcomes := make([]*notification.DispatchOutcome, 0)
	for rows.Next() {
		o := &notification.DispatchOutcome{}
		if err := rows.Scan(&o.StudentID, &o.Lesson, &o.Delivered, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning message state row: %w", err)
		}
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message state rows: %w", err)
	}
	return outcomes, nil
}
