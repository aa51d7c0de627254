// internal/domain/channel/channel.go
package channel

import "context"

// Opener hands a deep link to the host environment.
// The only observable failure is that the link could not be opened; anything that
// happens after hand-off (recipient offline, number unknown to the channel) is invisible here.
type Opener interface {
	OpenExternalChannel(ctx context.Context, url string) (opened bool)
}

// LinkSigner produces the signed public progress link for a student.
type LinkSigner interface {
	SignPublicLink(studentID string) (string, error)
}
