// internal/domain/notification/status.go
package notification

import (
	"time"
)

// DispatchOutcome records whether the last notification attempt for a student's lesson was handed off.
// Corresponds to the 'student_message_states' table; one row per (student_id, lesson).
type DispatchOutcome struct {
	StudentID string
	Lesson    string
	Delivered bool // message_state column
	UpdatedAt time.Time
}
