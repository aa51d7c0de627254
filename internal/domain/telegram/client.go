package telegram

import "context"

// LinkRelay posts a text with a single URL button into a Telegram chat.
type LinkRelay interface {
	RelayLink(ctx context.Context, chatID int64, text, buttonText, url string) error
}
