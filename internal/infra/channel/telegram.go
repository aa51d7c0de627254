// internal/infra/channel/telegram.go
package channel

import (
	"context"
	"fmt"

	"guardian_notifier/internal/domain/channel"
	domainTelegram "guardian_notifier/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

const relayButtonText = "Open WhatsApp"

// TelegramRelayOpener relays deep links to the operator's Telegram chat, where tapping
// the button opens the guardian's WhatsApp conversation. A failed send means the link
// could not be opened.
type TelegramRelayOpener struct {
	relay      domainTelegram.LinkRelay
	operatorID int64
	logger     *logrus.Entry
}

var _ channel.Opener = (*TelegramRelayOpener)(nil)

func NewTelegramRelayOpener(relay domainTelegram.LinkRelay, operatorID int64, logger *logrus.Entry) *TelegramRelayOpener {
	return &TelegramRelayOpener{relay: relay, operatorID: operatorID, logger: logger}
}

func (o *TelegramRelayOpener) OpenExternalChannel(ctx context.Context, url string) bool {
	if err := ctx.Err(); err != nil {
		o.logger.WithError(err).Warn("Context done before relaying channel link")
		return false
	}

	text := fmt.Sprintf("Guardian message ready:\n%s", url)
	if err := o.relay.RelayLink(ctx, o.operatorID, text, relayButtonText, url); err != nil {
		o.logger.WithError(err).WithField("operator_id", o.operatorID).Error("Failed to relay channel link to operator")
		return false
	}
	return true
}
