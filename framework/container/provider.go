package container

import "fmt"

// ── ServiceProvider ───────────────────────────────────────────────────────────

// ServiceProvider groups related registrations with an optional boot phase.
//
// Register runs as a deferred configuration callback during Build/Update —
// do not resolve services there. Boot runs as a build hook with the finished
// Container, after every provider has registered.
type ServiceProvider interface {
	// Register binds services into the registry.
	Register(r *Registry) error

	// Boot runs after a successful build. Safe to resolve any binding here.
	Boot(c *Container) error

	// Provides returns the keys this provider registers. Only consulted for
	// deferred providers.
	Provides() []string

	// IsDeferred reports whether the provider should be loaded lazily, on
	// the first Make of one of its Provides keys.
	IsDeferred() bool
}

// BaseProvider is an embeddable no-op base. Embed it and override only what
// the provider needs.
type BaseProvider struct{}

func (BaseProvider) Register(*Registry) error { return nil }
func (BaseProvider) Boot(*Container) error    { return nil }
func (BaseProvider) Provides() []string       { return nil }
func (BaseProvider) IsDeferred() bool         { return false }

// RegisterProvider wires a provider into the builder: its Register phase
// becomes a deferred callback and its Boot phase a build hook. Deferred
// providers are instead bound lazily for each provided key.
func (b *Builder) RegisterProvider(p ServiceProvider) error {
	if p == nil {
		return fmt.Errorf("%w: service provider is nil", ErrInvalidArgument)
	}

	if p.IsDeferred() {
		_, err := b.RegisterCallback(func(r *Registry) error {
			registerDeferred(r, p)
			return nil
		})
		return err
	}

	if _, err := b.RegisterCallback(p.Register); err != nil {
		return err
	}
	return b.RegisterBuildHook(p.Boot)
}

// registerDeferred binds a placeholder for each provided key. The first Make
// of any of them registers the provider for real, boots it, and re-resolves:
// the real registration is appended after the placeholder, so it wins.
func registerDeferred(r *Registry, p ServiceProvider) {
	loaded := false
	placeholders := make(map[string]*Registration)

	for _, key := range p.Provides() {
		k := key
		placeholders[k] = r.Register(k, func(c *Container) (any, error) {
			if !loaded {
				loaded = true
				if err := p.Register(c.Registry()); err != nil {
					return nil, err
				}
				if err := p.Boot(c); err != nil {
					return nil, err
				}
			}
			regs := c.registry.RegistrationsFor(k)
			winner := regs[len(regs)-1]
			if winner == placeholders[k] {
				return nil, fmt.Errorf("container: deferred provider %T promised [%s] but never registered it", p, k)
			}
			return c.Resolve(winner)
		})
	}
}
