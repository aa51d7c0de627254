// internal/app/listener.go
package app

import "github.com/sirupsen/logrus"

// LogListener records attempt side notifications in the log.
type LogListener struct {
	logger *logrus.Entry
}

func NewLogListener(logger *logrus.Entry) *LogListener {
	return &LogListener{logger: logger}
}

func (l *LogListener) MessageSent(studentID string, delivered bool) {
	l.logger.WithFields(logrus.Fields{"student_id": studentID, "delivered": delivered}).Info("Message state changed")
}

func (l *LogListener) ScoreChanged(studentID string) {
	l.logger.WithField("student_id", studentID).Info("Score changed")
}
