package container

import (
	"encoding/json"
	"strings"
	"sync"
)

// Default registration sources: the fixed set of resolution conveniences
// installed into every registry built without ExcludeDefaultSources. Each
// source synthesizes registrations for a reserved key scheme of the form
// "<kind>:<target>", so services never explicitly registered can still be
// resolved in a decorated shape.

// DefaultSources returns the default registration sources in their fixed
// installation order. The order is identical across all builds.
func DefaultSources() []RegistrationSource {
	return []RegistrationSource{
		keyedIndexSource{},
		collectionSource{},
		ownedSource{},
		metaSource{},
		lazySource{},
		lazyMetaSource{},
		typedMetaSource{},
		factoryDelegateSource{},
	}
}

// newSynthetic builds a registration produced by a source. Synthesized
// registrations are transient and never enter the registry's explicit order,
// so the activation sweep does not observe them.
func newSynthetic(key string, factory Factory) *Registration {
	return &Registration{key: key, factory: factory, metadata: make(map[string]any)}
}

// splitSourceKey matches key against a "<kind>:" prefix and returns the
// target portion.
func splitSourceKey(key, kind string) (string, bool) {
	rest, ok := strings.CutPrefix(key, kind+":")
	if !ok || rest == "" {
		return "", false
	}
	return rest, true
}

// ── Wrapper shapes handed out by the sources ──────────────────────────────────

// Lazy defers resolution of its target until the first Get call.
type Lazy struct {
	once    sync.Once
	resolve func() (any, error)
	value   any
	err     error
}

// Get resolves the target once and memoizes the result.
func (l *Lazy) Get() (any, error) {
	l.once.Do(func() { l.value, l.err = l.resolve() })
	return l.value, l.err
}

// Owned pairs a resolved instance with an explicit release hook the holder
// must call when done with it.
type Owned struct {
	Value   any
	release func()
}

// Release runs the release hook. Safe to call once.
func (o *Owned) Release() {
	if o.release != nil {
		o.release()
		o.release = nil
	}
}

// Meta pairs a resolved instance with its registration's metadata.
type Meta struct {
	Value    any
	Metadata map[string]any
}

// LazyMeta exposes a registration's metadata up front while deferring
// resolution of the value itself.
type LazyMeta struct {
	Metadata map[string]any
	Lazy     *Lazy
}

// TypedMeta exposes a resolved instance plus its metadata, bindable into a
// caller-defined struct.
type TypedMeta struct {
	Value    any
	Metadata map[string]any
}

// Bind maps the metadata entries onto dst's exported fields by JSON name.
func (m *TypedMeta) Bind(dst any) error {
	raw, err := json.Marshal(m.Metadata)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// FactoryDelegate produces a fresh instance of its target on every call.
type FactoryDelegate func() (any, error)

// ── Sources ───────────────────────────────────────────────────────────────────

// keyedIndexSource synthesizes "index:<tag>" → map[string]any of every key
// grouped under the tag, resolved.
type keyedIndexSource struct{}

func (keyedIndexSource) RegistrationsFor(key string, _ func(string) []*Registration) []*Registration {
	tag, ok := splitSourceKey(key, "index")
	if !ok {
		return nil
	}
	return []*Registration{newSynthetic(key, func(c *Container) (any, error) {
		index := make(map[string]any)
		for _, k := range c.registry.TaggedKeys(tag) {
			inst, err := c.Make(k)
			if err != nil {
				return nil, err
			}
			index[k] = inst
		}
		return index, nil
	})}
}

// collectionSource synthesizes "all:<key>" → []any resolving every explicit
// registration for the key, in registration order. An unregistered key
// yields an empty collection rather than a failure.
type collectionSource struct{}

func (collectionSource) RegistrationsFor(key string, _ func(string) []*Registration) []*Registration {
	target, ok := splitSourceKey(key, "all")
	if !ok {
		return nil
	}
	return []*Registration{newSynthetic(key, func(c *Container) (any, error) {
		regs := c.registry.RegistrationsFor(target)
		out := make([]any, 0, len(regs))
		for _, reg := range regs {
			inst, err := c.Resolve(reg)
			if err != nil {
				return nil, err
			}
			out = append(out, inst)
		}
		return out, nil
	})}
}

// ownedSource synthesizes "owned:<key>" → *Owned wrapping a fresh instance
// of the target.
type ownedSource struct{}

func (ownedSource) RegistrationsFor(key string, lookup func(string) []*Registration) []*Registration {
	target, ok := splitSourceKey(key, "owned")
	if !ok || len(lookup(target)) == 0 {
		return nil
	}
	return []*Registration{newSynthetic(key, func(c *Container) (any, error) {
		inst, err := c.Make(target)
		if err != nil {
			return nil, err
		}
		owned := &Owned{Value: inst}
		if closer, ok := inst.(interface{ Close() error }); ok {
			owned.release = func() { _ = closer.Close() }
		}
		return owned, nil
	})}
}

// metaSource synthesizes "meta:<key>" → *Meta carrying the winning
// registration's metadata.
type metaSource struct{}

func (metaSource) RegistrationsFor(key string, lookup func(string) []*Registration) []*Registration {
	target, ok := splitSourceKey(key, "meta")
	if !ok || len(lookup(target)) == 0 {
		return nil
	}
	return []*Registration{newSynthetic(key, func(c *Container) (any, error) {
		reg, inst, err := resolveWinner(c, target)
		if err != nil {
			return nil, err
		}
		return &Meta{Value: inst, Metadata: reg.metadata}, nil
	})}
}

// lazySource synthesizes "lazy:<key>" → *Lazy deferring resolution of the
// target until first use.
type lazySource struct{}

func (lazySource) RegistrationsFor(key string, lookup func(string) []*Registration) []*Registration {
	target, ok := splitSourceKey(key, "lazy")
	if !ok || len(lookup(target)) == 0 {
		return nil
	}
	return []*Registration{newSynthetic(key, func(c *Container) (any, error) {
		return &Lazy{resolve: func() (any, error) { return c.Make(target) }}, nil
	})}
}

// lazyMetaSource synthesizes "lazymeta:<key>" → *LazyMeta: metadata available
// immediately, value resolved on first use.
type lazyMetaSource struct{}

func (lazyMetaSource) RegistrationsFor(key string, lookup func(string) []*Registration) []*Registration {
	target, ok := splitSourceKey(key, "lazymeta")
	if !ok {
		return nil
	}
	regs := lookup(target)
	if len(regs) == 0 {
		return nil
	}
	winner := regs[len(regs)-1]
	return []*Registration{newSynthetic(key, func(c *Container) (any, error) {
		return &LazyMeta{
			Metadata: winner.metadata,
			Lazy:     &Lazy{resolve: func() (any, error) { return c.Resolve(winner) }},
		}, nil
	})}
}

// typedMetaSource synthesizes "typedmeta:<key>" → *TypedMeta whose metadata
// can be bound onto a typed struct.
type typedMetaSource struct{}

func (typedMetaSource) RegistrationsFor(key string, lookup func(string) []*Registration) []*Registration {
	target, ok := splitSourceKey(key, "typedmeta")
	if !ok || len(lookup(target)) == 0 {
		return nil
	}
	return []*Registration{newSynthetic(key, func(c *Container) (any, error) {
		reg, inst, err := resolveWinner(c, target)
		if err != nil {
			return nil, err
		}
		return &TypedMeta{Value: inst, Metadata: reg.metadata}, nil
	})}
}

// factoryDelegateSource synthesizes "factory:<key>" → FactoryDelegate
// producing a fresh instance per call, bypassing the singleton cache.
type factoryDelegateSource struct{}

func (factoryDelegateSource) RegistrationsFor(key string, lookup func(string) []*Registration) []*Registration {
	target, ok := splitSourceKey(key, "factory")
	if !ok || len(lookup(target)) == 0 {
		return nil
	}
	return []*Registration{newSynthetic(key, func(c *Container) (any, error) {
		return FactoryDelegate(func() (any, error) {
			regs := c.registry.RegistrationsFor(target)
			if len(regs) == 0 {
				return nil, &ResolutionError{Key: target, Context: "no registration and no source produced one"}
			}
			return regs[len(regs)-1].factory(c)
		}), nil
	})}
}

// resolveWinner resolves the most recent registration for key and returns it
// alongside the instance.
func resolveWinner(c *Container, key string) (*Registration, any, error) {
	regs := c.registry.RegistrationsFor(key)
	if len(regs) == 0 {
		return nil, nil, &ResolutionError{Key: key, Context: "no registration and no source produced one"}
	}
	reg := regs[len(regs)-1]
	inst, err := c.Resolve(reg)
	return reg, inst, err
}
