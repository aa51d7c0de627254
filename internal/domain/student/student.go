// internal/domain/student/student.go
package student

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexString accepts either a JSON string or a JSON number and keeps its textual form.
// Student ids and degrees arrive with both shapes from the dashboard.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(b))
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

// Student is the read-only snapshot a notification is built from.
// The flattened "current lesson" fields shadow the matching LessonRecord fields when present.
type Student struct {
	ID           FlexString              `json:"id"`
	Name         string                  `json:"name"`
	ParentsPhone string                  `json:"parents_phone"`
	Lessons      map[string]LessonRecord `json:"lessons"`

	AttendanceLesson   string         `json:"attendanceLesson,omitempty"`
	AttendedTheSession *bool          `json:"attended_the_session,omitempty"`
	LastAttendance     *string        `json:"lastAttendance,omitempty"`
	HwDone             *HomeworkState `json:"hwDone,omitempty"`
	HwDegree           *FlexString    `json:"hwDegree,omitempty"`
	QuizDegree         *FlexString    `json:"quizDegree,omitempty"`
}

// LessonRecord is the stored state of a single lesson for a student.
// HomeworkDegree is the canonical degree field; LegacyHwDegree is only read when it is blank.
type LessonRecord struct {
	Attended       bool          `json:"attended"`
	LastAttendance *string       `json:"lastAttendance,omitempty"`
	HwDone         HomeworkState `json:"hwDone,omitempty"`
	HomeworkDegree *FlexString   `json:"homework_degree,omitempty"`
	LegacyHwDegree *FlexString   `json:"hwDegree,omitempty"`
	QuizDegree     *FlexString   `json:"quizDegree,omitempty"`
	Comment        *string       `json:"comment,omitempty"`
}
