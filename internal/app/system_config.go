// internal/app/system_config.go
package app

import (
	"context"
	"sync"
	"time"

	"guardian_notifier/internal/domain/system"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

const systemConfigKey = "system_config"

// CachedConfigProvider serves system configuration from a TTL cache in front of a source.
// When the source fails it falls back to the last known value, then to the defaults
// (display name "Demo Attendance System", scoring disabled).
type CachedConfigProvider struct {
	source system.ConfigProvider
	cache  *cache.Cache
	logger *logrus.Entry

	mu        sync.RWMutex
	lastKnown *system.Config
}

func NewCachedConfigProvider(source system.ConfigProvider, ttl time.Duration, logger *logrus.Entry) *CachedConfigProvider {
	return &CachedConfigProvider{
		source: source,
		cache:  cache.New(ttl, 2*ttl),
		logger: logger,
	}
}

// GetSystemConfig never fails; source errors are logged and masked by the fallback chain.
func (p *CachedConfigProvider) GetSystemConfig(ctx context.Context) (system.Config, error) {
	if v, ok := p.cache.Get(systemConfigKey); ok {
		return v.(system.Config), nil
	}
	return p.Refresh(ctx), nil
}

// Refresh reloads the configuration from the source and caches it.
func (p *CachedConfigProvider) Refresh(ctx context.Context) system.Config {
	cfg, err := p.source.GetSystemConfig(ctx)
	if err != nil {
		p.logger.WithError(err).Warn("Failed to load system config, using fallback")
		p.mu.RLock()
		defer p.mu.RUnlock()
		if p.lastKnown != nil {
			return *p.lastKnown
		}
		return system.Config{}.WithDefaults()
	}

	cfg = cfg.WithDefaults()
	p.cache.Set(systemConfigKey, cfg, cache.DefaultExpiration)
	p.mu.Lock()
	p.lastKnown = &cfg
	p.mu.Unlock()
	p.logger.WithFields(logrus.Fields{
		"display_name":    cfg.DisplayName,
		"scoring_enabled": cfg.ScoringEnabled,
	}).Debug("System config refreshed")
	return cfg
}
