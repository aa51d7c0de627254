package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"guardian_notifier/internal/domain/scoring"
)

// PostgresScoringHistoryRepository reads the scoring_history table written by the scoring service.
type PostgresScoringHistoryRepository struct {
	db *sql.DB
}

var _ scoring.HistoryRepository = (*PostgresScoringHistoryRepository)(nil)

func NewPostgresScoringHistoryRepository(db *sql.DB) *PostgresScoringHistoryRepository {
	return &PostgresScoringHistoryRepository{db: db}
}

func (r *PostgresScoringHistoryRepository) GetLastHistory(ctx context.Context, studentID string, t scoring.Type, lesson string) (*scoring.HistoryEntry, error) {
	query := `SELECT student_id, type, lesson, data, created_at
               FROM scoring_history
               WHERE student_id = $1 AND type = $2 AND lesson = $3
               ORDER BY created_at DESC, id DESC LIMIT 1`
	entry := &scoring.HistoryEntry{}
	var raw []byte
	err := r.db.QueryRowContext(ctx, query, studentID, t, lesson).Scan(&entry.StudentID, &entry.Type, &entry.Lesson, &raw, &entry.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, scoring.ErrHistoryNotFound
		}
		return nil, fmt.Errorf("error getting last scoring history: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &entry.Data); err != nil {
			return nil, fmt.Errorf("error decoding scoring history data: %w", err)
		}
	}
	return entry, nil
}
