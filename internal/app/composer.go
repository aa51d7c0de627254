// internal/app/composer.go
package app

import (
	"fmt"
	"strings"

	"guardian_notifier/internal/domain/channel"
	"guardian_notifier/internal/domain/notification"
	"guardian_notifier/internal/domain/student"
	"guardian_notifier/internal/domain/system"
)

// MessageComposer builds the guardian message text.
type MessageComposer struct {
	signer channel.LinkSigner
}

func NewMessageComposer(signer channel.LinkSigner) *MessageComposer {
	return &MessageComposer{signer: signer}
}

// Compose renders the message for a student and its resolved lesson.
// cfg.ScoringEnabled has no effect on the text.
func (c *MessageComposer) Compose(s *student.Student, lesson student.ResolvedLesson, cfg system.Config) (string, error) {
	if s == nil || s.Name == "" {
		return "", notification.ErrIncompleteStudent
	}
	cfg = cfg.WithDefaults()

	firstName := strings.Split(s.Name, " ")[0]
	if firstName == "" {
		firstName = "Student"
	}

	link, err := c.signer.SignPublicLink(s.ID.String())
	if err != nil {
		return "", fmt.Errorf("%w: signing public link for student %s: %w", notification.ErrUnexpected, s.ID, err)
	}

	attendance := "Absent"
	if lesson.Attended {
		attendance = lesson.LastAttendance
		if strings.TrimSpace(attendance) == "" {
			attendance = "N/A"
		}
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "Follow up Message:\n\n")
	fmt.Fprintf(&msg, "Dear, %s's Parent\n", firstName)
	fmt.Fprintf(&msg, "We want to inform you that we are in:\n\n")
	fmt.Fprintf(&msg, "  • Lesson: %s\n", lesson.Name)
	fmt.Fprintf(&msg, "  • Attendance Info: %s", attendance)

	if lesson.Attended {
		homework := lesson.HwDone.Label()
		if lesson.HwDone == student.HomeworkDone && strings.TrimSpace(lesson.HomeworkDegree) != "" {
			homework = fmt.Sprintf("Done (%s)", lesson.HomeworkDegree)
		}
		fmt.Fprintf(&msg, "\n  • Homework: %s", homework)

		if strings.TrimSpace(lesson.QuizDegree) != "" {
			fmt.Fprintf(&msg, "\n  • Quiz Degree: %s", lesson.QuizDegree)
		}
	}

	if hasComment(lesson.Comment) {
		fmt.Fprintf(&msg, "\n  • Comment: %s", lesson.Comment)
	}

	fmt.Fprintf(&msg, "\n\nPlease visit the following link to check %s's grades and progress: ⬇️\n\n", firstName)
	fmt.Fprintf(&msg, "🖇️ %s\n\n", link)
	fmt.Fprintf(&msg, "Note :-\n  • %s's ID: %s\n\n", firstName, s.ID)
	fmt.Fprintf(&msg, "We wish %s gets high scores 😊❤\n\n", firstName)
	fmt.Fprintf(&msg, "– %s", cfg.DisplayName)
	return msg.String(), nil
}

func hasComment(c string) bool {
	return strings.TrimSpace(c) != "" && c != "undefined"
}
