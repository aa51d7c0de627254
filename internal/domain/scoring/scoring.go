// internal/domain/scoring/scoring.go
package scoring

import (
	"context"
	"errors"
	"time"
)

// Type selects which scoring computation a request or history entry belongs to.
type Type string

const (
	TypeAttendance Type = "attendance"
	TypeHomework   Type = "homework"
)

var (
	ErrHistoryNotFound      = errors.New("scoring history not found")
	ErrHistoryLookupFailed  = errors.New("scoring history lookup failed")
	ErrScoringRequestFailed = errors.New("scoring request failed")
)

// HistoryEntry is the last recorded scoring input for (StudentID, Type, Lesson).
type HistoryEntry struct {
	StudentID string
	Type      Type
	Lesson    string
	Data      map[string]interface{}
	CreatedAt time.Time
}

// Request triggers one downstream scoring computation.
type Request struct {
	StudentID string                 `json:"studentId"`
	Type      Type                   `json:"type"`
	Lesson    string                 `json:"lesson"`
	Data      map[string]interface{} `json:"data"`
}

// HistoryRepository reads the scoring history owned by the scoring service.
type HistoryRepository interface {
	// GetLastHistory returns ErrHistoryNotFound when nothing was recorded for the key.
	GetLastHistory(ctx context.Context, studentID string, t Type, lesson string) (*HistoryEntry, error)
}

// Client submits scoring requests.
type Client interface {
	SubmitScoringRequest(ctx context.Context, req Request) error
}
