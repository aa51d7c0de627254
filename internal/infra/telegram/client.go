package telegram

import (
	"context"
	"fmt"

	domainTelegram "guardian_notifier/internal/domain/telegram"

	"gopkg.in/telebot.v3"
)

// TelebotAdapter relays links through gopkg.in/telebot.v3.
type TelebotAdapter struct {
	bot *telebot.Bot
}

var _ domainTelegram.LinkRelay = (*TelebotAdapter)(nil)

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// RelayLink sends text to chatID with an inline button opening url.
// Link previews are disabled; the wa.me preview carries no information.
func (tba *TelebotAdapter) RelayLink(ctx context.Context, chatID int64, text, buttonText, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := tba.bot.Send(telebot.ChatID(chatID), text, linkOptions(buttonText, url))
	if err != nil {
		return fmt.Errorf("error relaying link to chat %d: %w", chatID, err)
	}
	return nil
}

func linkOptions(buttonText, url string) *telebot.SendOptions {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(markup.Row(markup.URL(buttonText, url)))
	return &telebot.SendOptions{
		ReplyMarkup:           markup,
		DisableWebPagePreview: true,
	}
}
