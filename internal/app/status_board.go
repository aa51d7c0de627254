// internal/app/status_board.go
package app

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// DefaultStatusClearInterval is how long a status string stays visible.
const DefaultStatusClearInterval = 3 * time.Second

// StatusBoard holds the latest status string per student until it expires.
type StatusBoard struct {
	cache *cache.Cache
}

func NewStatusBoard(clearAfter time.Duration) *StatusBoard {
	if clearAfter <= 0 {
		clearAfter = DefaultStatusClearInterval
	}
	return &StatusBoard{cache: cache.New(clearAfter, 2*clearAfter)}
}

// Publish replaces the visible status of a student and restarts its clear timer.
func (b *StatusBoard) Publish(studentID, status string) {
	b.cache.Set(studentID, status, cache.DefaultExpiration)
}

// Current returns the visible status, or false once it has cleared.
func (b *StatusBoard) Current(studentID string) (string, bool) {
	v, ok := b.cache.Get(studentID)
	if !ok {
		return "", false
	}
	return v.(string), true
}
