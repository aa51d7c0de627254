// internal/domain/student/resolve.go
package student

import (
	"sort"
	"strings"
)

// NoLesson is the lesson name used when neither the snapshot nor its lessons map names one.
const NoLesson = "N/A"

// ResolvedLesson is the single canonical view of the current lesson for one invocation.
type ResolvedLesson struct {
	Name           string
	Known          bool // false when Name is the NoLesson sentinel
	Attended       bool
	LastAttendance string
	HwDone         HomeworkState // never HomeworkUnset
	HomeworkDegree string
	QuizDegree     string
	Comment        string
}

// CurrentLessonName returns the lesson the snapshot refers to: the flattened
// attendanceLesson, else the lexicographically first key of Lessons, else NoLesson.
func CurrentLessonName(s *Student) (string, bool) {
	if s == nil {
		return NoLesson, false
	}
	if name := strings.TrimSpace(s.AttendanceLesson); name != "" {
		return s.AttendanceLesson, true
	}
	if len(s.Lessons) == 0 {
		return NoLesson, false
	}
	keys := make([]string, 0, len(s.Lessons))
	for k := range s.Lessons {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[0], true
}

// Resolve applies the flattened-field precedence rule.
// A flattened field wins whenever it is present; for text fields a blank value counts as absent.
// Homework degree: flattened hwDegree, then the record's homework_degree, then its legacy hwDegree.
// The comment is only ever read from the lesson record.
func Resolve(s *Student) ResolvedLesson {
	name, known := CurrentLessonName(s)
	view := ResolvedLesson{Name: name, Known: known, HwDone: HomeworkNotDone}
	if s == nil {
		return view
	}

	var rec LessonRecord
	if known {
		rec = s.Lessons[name]
	}

	view.Attended = rec.Attended
	if s.AttendedTheSession != nil {
		view.Attended = *s.AttendedTheSession
	}

	view.LastAttendance = firstText(strPtr(s.LastAttendance), strPtr(rec.LastAttendance))

	if rec.HwDone != HomeworkUnset {
		view.HwDone = rec.HwDone
	}
	if s.HwDone != nil && *s.HwDone != HomeworkUnset {
		view.HwDone = *s.HwDone
	}

	view.HomeworkDegree = firstText(flexPtr(s.HwDegree), flexPtr(rec.HomeworkDegree), flexPtr(rec.LegacyHwDegree))
	view.QuizDegree = firstText(flexPtr(s.QuizDegree), flexPtr(rec.QuizDegree))
	view.Comment = strPtr(rec.Comment)
	return view
}

func firstText(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func strPtr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func flexPtr(p *FlexString) string {
	if p == nil {
		return ""
	}
	return string(*p)
}
