package container

import "fmt"

// ── Build options ─────────────────────────────────────────────────────────────

// BuildOptions is a bitset of flags altering Build and Update behavior.
// Flags are independently combinable.
type BuildOptions uint32

const (
	// ExcludeDefaultSources skips installation of the default registration
	// sources into the new registry.
	ExcludeDefaultSources BuildOptions = 1 << iota

	// IgnoreStartableComponents skips the eager-activation sweep, so no
	// Startable or AutoActivate component is constructed by this call.
	IgnoreStartableComponents
)

// BuildDefault installs the default sources and runs the activation sweep.
const BuildDefault BuildOptions = 0

// Has reports whether flag is set.
func (o BuildOptions) Has(flag BuildOptions) bool { return o&flag != 0 }

// ── Builder ───────────────────────────────────────────────────────────────────

// Builder accumulates deferred configuration callbacks and build hooks, then
// produces a Container in a single Build call. A Builder is single-use: its
// callback sequence runs at most once, whether through Build or Update.
//
// Not safe for concurrent configuration — the callback sequence and built
// flag assume a single owning goroutine.
type Builder struct {
	callbacks  []*DeferredCallback
	properties PropertyBag
	built      bool
}

// NewBuilder creates a Builder with a fresh property bag.
func NewBuilder() *Builder {
	return &Builder{properties: NewPropertyBag()}
}

// NewScopedBuilder creates a Builder sharing an existing property bag, so a
// nested scope inherits its parent's shared state. The bag's reserved
// build-hook entry is created if the bag lacks one.
func NewScopedBuilder(properties PropertyBag) *Builder {
	if properties == nil {
		properties = NewPropertyBag()
	}
	properties.buildHooks()
	return &Builder{properties: properties}
}

// Properties returns the builder's shared property bag.
func (b *Builder) Properties() PropertyBag { return b.properties }

// RegisterCallback appends a deferred configuration action and returns its
// handle. The action is not invoked until Build or Update.
func (b *Builder) RegisterCallback(fn ConfigureFunc) (*DeferredCallback, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: configuration callback is nil", ErrInvalidArgument)
	}
	dc := newDeferredCallback(fn)
	b.callbacks = append(b.callbacks, dc)
	return dc, nil
}

// RegisterBuildHook appends a hook to run with the finished Container after a
// successful build. The hook list lives in the shared property bag, so it is
// visible to every builder sharing the bag.
func (b *Builder) RegisterBuildHook(hook BuildHook) error {
	if hook == nil {
		return fmt.Errorf("%w: build hook is nil", ErrInvalidArgument)
	}
	b.properties.buildHooks().append(hook)
	return nil
}

// Register is shorthand for a callback that registers key with factory.
func (b *Builder) Register(key string, factory Factory, opts ...RegistrationOption) error {
	_, err := b.RegisterCallback(func(r *Registry) error {
		r.Register(key, factory, opts...)
		return nil
	})
	return err
}

// RegisterInstance is shorthand for a callback that registers a pre-built
// value as a singleton.
func (b *Builder) RegisterInstance(key string, value any) error {
	_, err := b.RegisterCallback(func(r *Registry) error {
		r.Instance(key, value)
		return nil
	})
	return err
}

// Build creates a Container around a fresh Registry: installs the default
// registration sources (unless excluded), executes every deferred callback in
// registration order, runs the eager-activation sweep (unless ignored), then
// runs the build hooks with the finished Container.
//
// A failing callback aborts the remaining callbacks and leaves the registry
// partially configured; there is no rollback. Callers are expected to discard
// the Builder and Container on failure.
func (b *Builder) Build(opts BuildOptions) (*Container, error) {
	if b.built {
		return nil, ErrAlreadyBuilt
	}
	// Flip before any further work so a failing call cannot be re-entered.
	b.built = true

	registry := NewRegistry()
	ctr := newContainer(registry, b.properties)

	if !opts.Has(ExcludeDefaultSources) {
		for _, s := range DefaultSources() {
			registry.AddSource(s)
		}
	}

	if err := b.runCallbacks(registry); err != nil {
		return nil, err
	}

	if !opts.Has(IgnoreStartableComponents) {
		if err := (activationScanner{ctr}).scan(); err != nil {
			return nil, err
		}
	}

	if err := b.properties.buildHooks().run(ctr); err != nil {
		return nil, err
	}
	return ctr, nil
}

// Update executes this builder's callbacks against an already-configured
// registry, then re-runs the eager-activation sweep (unless ignored).
// Previously activated registrations are skipped; only registrations added
// since the last sweep are activated. Default sources are never re-installed
// into an existing registry.
//
// The builder's single-use rule still applies: a Builder that has built or
// updated once cannot run its callback sequence again.
func (b *Builder) Update(registry *Registry, opts BuildOptions) error {
	if registry == nil {
		return fmt.Errorf("%w: registry is nil", ErrInvalidArgument)
	}
	return b.update(registry, newContainer(registry, b.properties), opts)
}

// UpdateContainer is like Update against the container's own registry, but
// resolves activated components through the live container so its singleton
// cache is reused.
func (b *Builder) UpdateContainer(ctr *Container, opts BuildOptions) error {
	if ctr == nil {
		return fmt.Errorf("%w: container is nil", ErrInvalidArgument)
	}
	return b.update(ctr.registry, ctr, opts)
}

func (b *Builder) update(registry *Registry, ctr *Container, opts BuildOptions) error {
	if b.built {
		return ErrAlreadyBuilt
	}
	b.built = true

	if err := b.runCallbacks(registry); err != nil {
		return err
	}

	if !opts.Has(IgnoreStartableComponents) {
		return activationScanner{ctr}.scan()
	}
	return nil
}

// runCallbacks executes every deferred callback strictly in registration
// order. The first failure propagates immediately.
func (b *Builder) runCallbacks(registry *Registry) error {
	for _, dc := range b.callbacks {
		if err := dc.configure(registry); err != nil {
			return err
		}
	}
	return nil
}
