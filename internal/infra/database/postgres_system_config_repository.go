package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"guardian_notifier/internal/domain/system"
)

// PostgresSystemConfigRepository reads the single system_config row.
type PostgresSystemConfigRepository struct {
	db          *sql.DB
	defaultName string
}

var _ system.ConfigProvider = (*PostgresSystemConfigRepository)(nil)

func NewPostgresSystemConfigRepository(db *sql.DB, defaultName string) *PostgresSystemConfigRepository {
	return &PostgresSystemConfigRepository{db: db, defaultName: defaultName}
}

// GetSystemConfig returns defaults when the row is missing.
// scoring_system is stored as text and is enabled only for "true".
func (r *PostgresSystemConfigRepository) GetSystemConfig(ctx context.Context) (system.Config, error) {
	query := `SELECT name, scoring_system FROM system_config ORDER BY id LIMIT 1`
	var name, scoringSystem sql.NullString
	err := r.db.QueryRowContext(ctx, query).Scan(&name, &scoringSystem)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return system.Config{}, fmt.Errorf("error getting system config: %w", err)
	}

	cfg := system.Config{
		DisplayName:    strings.TrimSpace(name.String),
		ScoringEnabled: ParseScoringFlag(scoringSystem.String),
	}
	if cfg.DisplayName == "" {
		cfg.DisplayName = r.defaultName
	}
	return cfg.WithDefaults(), nil
}

// ParseScoringFlag accepts the boolean-ish encodings the dashboard writes.
func ParseScoringFlag(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "true")
}
