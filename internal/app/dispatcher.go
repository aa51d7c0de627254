// internal/app/dispatcher.go
package app

import (
	"context"
	"strings"

	"guardian_notifier/internal/domain/channel"

	"github.com/sirupsen/logrus"
)

// DispatchResult is the only thing the host environment can tell us about a hand-off.
type DispatchResult int

const (
	LocallyBlocked DispatchResult = iota
	HandedOff
)

func (r DispatchResult) String() string {
	if r == HandedOff {
		return "handed_off"
	}
	return "locally_blocked"
}

// DefaultChannelBaseURL is the WhatsApp click-to-chat endpoint.
const DefaultChannelBaseURL = "https://wa.me"

// Dispatcher turns a composed message into a channel deep link and opens it.
type Dispatcher struct {
	baseURL string
	opener  channel.Opener
	logger  *logrus.Entry
}

func NewDispatcher(baseURL string, opener channel.Opener, logger *logrus.Entry) *Dispatcher {
	if baseURL == "" {
		baseURL = DefaultChannelBaseURL
	}
	return &Dispatcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		opener:  opener,
		logger:  logger,
	}
}

// DeepLink returns <base>/<phone>?text=<percent-encoded message>.
func (d *Dispatcher) DeepLink(phone, message string) string {
	return d.baseURL + "/" + phone + "?text=" + encodeURIComponent(message)
}

// Dispatch opens the deep link. Any outcome other than a local refusal counts as HandedOff.
func (d *Dispatcher) Dispatch(ctx context.Context, phone, message string) (string, DispatchResult) {
	link := d.DeepLink(phone, message)
	d.logger.WithField("phone", phone).Debug("Opening channel deep link")
	if !d.opener.OpenExternalChannel(ctx, link) {
		d.logger.WithField("phone", phone).Warn("Channel link could not be opened")
		return link, LocallyBlocked
	}
	return link, HandedOff
}

const upperHex = "0123456789ABCDEF"

// encodeURIComponent escapes s byte-for-byte like ECMAScript's encodeURIComponent:
// everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ) is percent-encoded as UTF-8.
func encodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0F])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
