// internal/domain/system/config.go
package system

import (
	"context"
)

// DefaultDisplayName signs messages when no system name is configured.
const DefaultDisplayName = "Demo Attendance System"

// Config is the process-wide configuration passed into every notification attempt.
type Config struct {
	DisplayName    string
	ScoringEnabled bool
}

// ConfigProvider fetches the current system configuration.
type ConfigProvider interface {
	GetSystemConfig(ctx context.Context) (Config, error)
}

// WithDefaults fills the display name when it is blank.
func (c Config) WithDefaults() Config {
	if c.DisplayName == "" {
		c.DisplayName = DefaultDisplayName
	}
	return c
}
