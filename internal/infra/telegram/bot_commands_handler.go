// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"context"
	"fmt"
	"strings"

	"guardian_notifier/internal/app"
	"guardian_notifier/internal/domain/notification"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterOperatorCommands registers /start, /help and /status for the operator chat.
// Everybody else gets a short refusal.
func RegisterOperatorCommands(
	ctx context.Context,
	b *telebot.Bot,
	operatorID int64,
	board *app.StatusBoard,
	outcomes notification.Repository,
	baseLogger *logrus.Entry,
) {
	cmdLogger := baseLogger.WithField("handler_group", "operator")

	b.Handle("/start", func(c telebot.Context) error {
		logCtx := cmdLogger.WithFields(logrus.Fields{"command": "/start", "sender_id": c.Sender().ID})
		logCtx.Info("Processing /start command")
		if c.Sender().ID != operatorID {
			logCtx.Warn("Unauthorized access attempt")
			return c.Send("This bot only serves the configured operator.")
		}
		return c.Send(fmt.Sprintf("Hi %s! Guardian message links will be delivered here. Use /help for commands.", c.Sender().FirstName))
	})

	b.Handle("/help", func(c telebot.Context) error {
		logCtx := cmdLogger.WithFields(logrus.Fields{"command": "/help", "sender_id": c.Sender().ID})
		logCtx.Info("Processing /help command")
		if c.Sender().ID != operatorID {
			return c.Send("No commands are available for you.")
		}
		var helpText strings.Builder
		helpText.WriteString("Available commands:\n\n")
		helpText.WriteString("`/status <StudentID>`\n - Show the latest notification status and stored outcomes.\n\n")
		helpText.WriteString("`/help`\n - Show this message.")
		return c.Send(helpText.String(), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	})

	b.Handle("/status", func(c telebot.Context) error {
		logCtx := cmdLogger.WithFields(logrus.Fields{"command": "/status", "sender_id": c.Sender().ID})
		if c.Sender().ID != operatorID {
			logCtx.Warn("Unauthorized access attempt")
			return c.Send("No commands are available for you.")
		}
		args := c.Args()
		if len(args) != 1 {
			return c.Send("Usage: /status <StudentID>")
		}
		studentID := args[0]
		logCtx = logCtx.WithField("student_id", studentID)

		reply, err := statusReport(ctx, studentID, board, outcomes)
		if err != nil {
			logCtx.WithError(err).Error("Failed to build status report")
			return c.Send("Could not load the stored outcomes. Please try again later.")
		}
		return c.Send(reply)
	})
}

func statusReport(ctx context.Context, studentID string, board *app.StatusBoard, outcomes notification.Repository) (string, error) {
	var out strings.Builder
	fmt.Fprintf(&out, "Student %s\n", studentID)
	if status, ok := board.Current(studentID); ok {
		fmt.Fprintf(&out, "Latest: %s\n", status)
	}

	list, err := outcomes.ListDispatchOutcomes(ctx, studentID, nil)
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		out.WriteString("No stored outcomes.")
		return out.String(), nil
	}
	for _, o := range list {
		state := "failed"
		if o.Delivered {
			state = "sent"
		}
		fmt.Fprintf(&out, "• %s: %s (%s)\n", o.Lesson, state, o.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return strings.TrimRight(out.String(), "\n"), nil
}
