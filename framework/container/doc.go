// Package container provides a registration-centric IoC container for Go,
// built around a deferred-configuration Builder.
//
// # Overview
//
// Configuration is accumulated, not applied: callers register configuration
// callbacks and build hooks on a Builder, then call Build exactly once. Build
// creates a Container around a fresh Registry, installs the default
// registration sources, replays every callback in registration order, eagerly
// activates components marked Startable or AutoActivate, and finally runs the
// build hooks with the finished Container.
//
// # Builder lifecycle
//
//	b := container.NewBuilder()
//
//	b.Register("cache", newRedisCache, container.Singleton())
//	b.Register("server", newServer, container.Singleton(), container.AsStartable())
//
//	b.RegisterBuildHook(func(c *container.Container) error {
//	    log.Println("application built")
//	    return nil
//	})
//
//	c, err := b.Build(container.BuildDefault)
//
// A Builder is single-use: a second Build (or Update) fails with
// ErrAlreadyBuilt. Callbacks run strictly in registration order, and a later
// registration for the same key overrides earlier ones at resolution time.
//
// # Eager activation
//
// A registration marked with AsStartable is constructed during Build and its
// instance's Start hook invoked; one marked with AsAutoActivated is only
// constructed. Either way the registration is marked activated — even when
// construction or the start hook fails — so re-running the sweep via Update
// activates only registrations added since the last sweep.
//
//	b2 := container.NewBuilder()
//	b2.Register("poller", newPoller, container.AsStartable())
//	err := b2.Update(c.Registry(), container.BuildDefault)
//
// # Registration sources
//
// Sources synthesize registrations on demand for keys that were never
// explicitly registered. The default set resolves the reserved schemes
// "index:<tag>", "all:<key>", "owned:<key>", "meta:<key>", "lazy:<key>",
// "lazymeta:<key>", "typedmeta:<key>" and "factory:<key>":
//
//	lazy, _ := container.Resolve[*container.Lazy](c, "lazy:cache")
//	cache, err := lazy.Get() // target constructed here, once
//
// Custom sources implement RegistrationSource and are installed with
// Registry.AddSource.
//
// # Service providers
//
// Providers bundle registrations with a boot phase, replayed through the
// Builder:
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(r *container.Registry) error {
//	    r.Register("mailer", newMailer, container.Singleton())
//	    return nil
//	}
//
//	func (p *AppServiceProvider) Boot(c *container.Container) error {
//	    _, err := c.Make("mailer")
//	    return err
//	}
//
//	b.RegisterProvider(&AppServiceProvider{})
//
// # Resolving
//
//	raw, err := c.Make("cache")
//	cache, err := container.Resolve[*RedisCache](c, "cache")
//	cache := container.MustResolve[*RedisCache](c, "cache") // panics on failure
//
// The package is synchronous and assumes externally serialized use during the
// configuration phase; the Registry guards only its own maps.
package container
