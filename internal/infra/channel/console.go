// internal/infra/channel/console.go
package channel

import (
	"context"

	"guardian_notifier/internal/domain/channel"

	"github.com/sirupsen/logrus"
)

// ConsoleOpener logs deep links instead of opening them. It never reports a block.
type ConsoleOpener struct {
	logger *logrus.Entry
}

var _ channel.Opener = (*ConsoleOpener)(nil)

func NewConsoleOpener(logger *logrus.Entry) *ConsoleOpener {
	return &ConsoleOpener{logger: logger}
}

func (o *ConsoleOpener) OpenExternalChannel(_ context.Context, url string) bool {
	o.logger.WithField("url", url).Info("Channel link ready")
	return true
}
