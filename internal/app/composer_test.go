package app

import (
	"errors"
	"strings"
	"testing"

	"guardian_notifier/internal/domain/notification"
	"guardian_notifier/internal/domain/student"
	"guardian_notifier/internal/domain/system"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compose(t *testing.T, s *student.Student) string {
	t.Helper()
	msg, err := NewMessageComposer(fakeSigner{}).Compose(s, student.Resolve(s), system.Config{DisplayName: "Bright Academy"})
	require.NoError(t, err)
	return msg
}

func TestCompose_FullMessage(t *testing.T) {
	s := &student.Student{
		ID:   "42",
		Name: "Omar Khaled",
		Lessons: map[string]student.LessonRecord{
			"Lesson 3": {
				Attended:       true,
				LastAttendance: str("2024-03-01 10:00"),
				HwDone:         student.HomeworkDone,
				HomeworkDegree: flex("8/10"),
				QuizDegree:     flex("9"),
				Comment:        str("Great work"),
			},
		},
	}

	want := "Follow up Message:\n\n" +
		"Dear, Omar's Parent\n" +
		"We want to inform you that we are in:\n\n" +
		"  • Lesson: Lesson 3\n" +
		"  • Attendance Info: 2024-03-01 10:00\n" +
		"  • Homework: Done (8/10)\n" +
		"  • Quiz Degree: 9\n" +
		"  • Comment: Great work\n\n" +
		"Please visit the following link to check Omar's grades and progress: ⬇️\n\n" +
		"🖇️ https://progress.example/s/42\n\n" +
		"Note :-\n" +
		"  • Omar's ID: 42\n\n" +
		"We wish Omar gets high scores 😊❤\n\n" +
		"– Bright Academy"
	assert.Equal(t, want, compose(t, s))
}

func TestCompose_AbsentOmitsHomeworkAndQuizButKeepsComment(t *testing.T) {
	s := &student.Student{
		ID:   "7",
		Name: "Sara",
		Lessons: map[string]student.LessonRecord{
			"L1": {
				Attended:       false,
				HwDone:         student.HomeworkDone,
				HomeworkDegree: flex("10/10"),
				QuizDegree:     flex("5"),
				Comment:        str("Please call us"),
			},
		},
	}
	msg := compose(t, s)
	assert.Contains(t, msg, "  • Attendance Info: Absent\n")
	assert.NotContains(t, msg, "Homework:")
	assert.NotContains(t, msg, "Quiz Degree:")
	assert.Contains(t, msg, "  • Comment: Please call us")
}

func TestCompose_HomeworkLine(t *testing.T) {
	tests := []struct {
		name   string
		state  student.HomeworkState
		degree string
		want   string
	}{
		{"done with degree", student.HomeworkDone, "8/10", "  • Homework: Done (8/10)"},
		{"done blank degree", student.HomeworkDone, "  ", "  • Homework: Done\n"},
		{"not done", student.HomeworkNotDone, "3/10", "  • Homework: Not Done\n"},
		{"no homework", student.HomeworkNone, "", "  • Homework: No Homework\n"},
		{"not completed", student.HomeworkNotCompleted, "", "  • Homework: Not Completed\n"},
		{"unknown value", student.HomeworkOther, "", "  • Homework: Not Done\n"},
		{"unset defaults to not done", student.HomeworkUnset, "", "  • Homework: Not Done\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &student.Student{ID: "1", Name: "Ali", Lessons: map[string]student.LessonRecord{
				"L1": {Attended: true, HwDone: tt.state, HomeworkDegree: flex(tt.degree)},
			}}
			assert.Contains(t, compose(t, s), tt.want)
		})
	}
}

func TestCompose_OptionalLines(t *testing.T) {
	s := &student.Student{ID: "1", Name: "Ali", Lessons: map[string]student.LessonRecord{
		"L1": {Attended: true, QuizDegree: flex(" "), Comment: str("undefined")},
	}}
	msg := compose(t, s)
	assert.NotContains(t, msg, "Quiz Degree:")
	assert.NotContains(t, msg, "Comment:")
	assert.Contains(t, msg, "  • Attendance Info: N/A\n", "attended without a timestamp")

	s.Lessons["L1"] = student.LessonRecord{Attended: true, Comment: str("   ")}
	assert.NotContains(t, compose(t, s), "Comment:")
}

func TestCompose_NoLessonStillComposes(t *testing.T) {
	msg := compose(t, &student.Student{ID: "3", Name: "Youssef Ali"})
	assert.Contains(t, msg, "  • Lesson: N/A\n")
	assert.Contains(t, msg, "  • Attendance Info: Absent")
	assert.Contains(t, msg, "Dear, Youssef's Parent")
}

func TestCompose_DefaultDisplayName(t *testing.T) {
	s := &student.Student{ID: "3", Name: "Nour"}
	msg, err := NewMessageComposer(fakeSigner{}).Compose(s, student.Resolve(s), system.Config{})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(msg, "– "+system.DefaultDisplayName))
}

func TestCompose_ScoringFlagDoesNotChangeText(t *testing.T) {
	s := &student.Student{ID: "3", Name: "Nour", Lessons: map[string]student.LessonRecord{"L1": {}}}
	c := NewMessageComposer(fakeSigner{})
	on, err := c.Compose(s, student.Resolve(s), system.Config{DisplayName: "X", ScoringEnabled: true})
	require.NoError(t, err)
	off, err := c.Compose(s, student.Resolve(s), system.Config{DisplayName: "X"})
	require.NoError(t, err)
	assert.Equal(t, on, off)
}

func TestCompose_Errors(t *testing.T) {
	c := NewMessageComposer(fakeSigner{})
	_, err := c.Compose(&student.Student{ID: "1"}, student.ResolvedLesson{}, system.Config{})
	assert.ErrorIs(t, err, notification.ErrIncompleteStudent)

	_, err = c.Compose(nil, student.ResolvedLesson{}, system.Config{})
	assert.ErrorIs(t, err, notification.ErrIncompleteStudent)

	c = NewMessageComposer(fakeSigner{err: errors.New("no secret")})
	s := &student.Student{ID: "1", Name: "Ali"}
	_, err = c.Compose(s, student.Resolve(s), system.Config{})
	assert.ErrorIs(t, err, notification.ErrUnexpected)
}
