package providers

import (
	"github.com/km-arc/go-foundry/framework/config"
	"github.com/km-arc/go-foundry/framework/container"
	"github.com/km-arc/go-foundry/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env and
// registers it as "config".
//
// Registered keys:
//   - "config"        → *config.Config
//   - "configuration" → alias of "config"
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(r *container.Registry) error {
	envFiles := p.EnvFiles
	r.Register("config", func(*container.Container) (any, error) {
		return config.Load(envFiles...), nil
	}, container.Singleton())
	r.Alias("config", "configuration")
	return nil
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router as "router".
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(r *container.Registry) error {
	r.Register("router", func(*container.Container) (any, error) {
		return routing.New(), nil
	}, container.Singleton())
	return nil
}
