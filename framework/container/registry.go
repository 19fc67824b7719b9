package container

import (
	"sync"
)

// ── Registrations ─────────────────────────────────────────────────────────────

// Factory builds a concrete value, resolving any dependencies from the
// container.
type Factory func(c *Container) (any, error)

// Registration describes how to produce instances of one service key.
// It owns its metadata map, which also hosts the activation marker.
type Registration struct {
	key          string
	factory      Factory
	singleton    bool
	startable    bool
	autoActivate bool
	tags         []string
	metadata     map[string]any
}

// activatedKey is the reserved metadata entry recording "already eagerly
// activated". Set exactly once per registration, never cleared.
const activatedKey = "__activated"

// Key returns the service key the registration was made under.
func (r *Registration) Key() string { return r.key }

// Metadata returns the registration's own mutable metadata map.
func (r *Registration) Metadata() map[string]any { return r.metadata }

// IsStartable reports whether the registration carries the Startable
// capability.
func (r *Registration) IsStartable() bool { return r.startable }

// IsAutoActivated reports whether the registration carries the AutoActivate
// tag.
func (r *Registration) IsAutoActivated() bool { return r.autoActivate }

func (r *Registration) activated() bool {
	v, ok := r.metadata[activatedKey].(bool)
	return ok && v
}

func (r *Registration) markActivated() { r.metadata[activatedKey] = true }

// RegistrationOption customizes a registration at registration time.
type RegistrationOption func(*Registration)

// Singleton caches the first resolved instance and reuses it for all later
// resolutions within a Container.
func Singleton() RegistrationOption {
	return func(r *Registration) { r.singleton = true }
}

// AsStartable marks the registration for eager construction at build time;
// the resolved instance must implement Startable.
func AsStartable() RegistrationOption {
	return func(r *Registration) { r.startable = true }
}

// AsAutoActivated marks the registration for eager construction at build
// time, with no start hook.
func AsAutoActivated() RegistrationOption {
	return func(r *Registration) { r.autoActivate = true }
}

// WithTags groups the registration under the given tags.
func WithTags(tags ...string) RegistrationOption {
	return func(r *Registration) { r.tags = append(r.tags, tags...) }
}

// WithMetadata attaches a metadata entry to the registration.
func WithMetadata(key string, value any) RegistrationOption {
	return func(r *Registration) { r.metadata[key] = value }
}

// ── Registration sources ──────────────────────────────────────────────────────

// RegistrationSource is the open extension point for synthesizing
// registrations on demand. Given a requested service key and a lookup into
// the explicit registrations, a source may return zero or more synthesized
// registrations for services that were never explicitly registered.
type RegistrationSource interface {
	RegistrationsFor(key string, lookup func(string) []*Registration) []*Registration
}

// ── Registry ──────────────────────────────────────────────────────────────────

// Registry is the mutable store of registrations and registration sources.
// Registrations accumulate in order; a later registration for the same key
// overrides earlier ones at resolution time without removing them.
type Registry struct {
	mu sync.RWMutex

	// all registrations, in registration order
	order []*Registration

	// key → registrations for that key, in registration order
	byKey map[string][]*Registration

	// alias → canonical key
	aliases map[string]string

	// tag → keys
	tags map[string][]string

	// registration sources, in installation order
	sources []RegistrationSource
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byKey:   make(map[string][]*Registration),
		aliases: make(map[string]string),
		tags:    make(map[string][]string),
	}
}

// Register appends a registration for key built by factory.
//
//	r.Register("cache", newRedisCache, container.Singleton())
func (r *Registry) Register(key string, factory Factory, opts ...RegistrationOption) *Registration {
	reg := &Registration{
		key:      key,
		factory:  factory,
		metadata: make(map[string]any),
	}
	for _, opt := range opts {
		opt(reg)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	k := r.canonical(key)
	r.order = append(r.order, reg)
	r.byKey[k] = append(r.byKey[k], reg)
	for _, tag := range reg.tags {
		r.tags[tag] = append(r.tags[tag], k)
	}
	return reg
}

// Instance registers a pre-built value as a singleton.
func (r *Registry) Instance(key string, value any) *Registration {
	return r.Register(key, func(*Container) (any, error) { return value, nil }, Singleton())
}

// Alias registers an alternative name for a key.
func (r *Registry) Alias(key, alias string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = r.canonical(key)
}

// Tag groups existing keys under a named tag.
func (r *Registry) Tag(tag string, keys ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range keys {
		r.tags[tag] = append(r.tags[tag], r.canonical(key))
	}
}

// AddSource installs one registration source. Order-sensitive: sources are
// consulted in installation order.
func (r *Registry) AddSource(s RegistrationSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = append(r.sources, s)
}

// Sources returns the installed registration sources in installation order.
func (r *Registry) Sources() []RegistrationSource {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RegistrationSource, len(r.sources))
	copy(out, r.sources)
	return out
}

// RegistrationsFor returns all registrations for key, in registration order.
// When no explicit registration exists, the installed sources are consulted
// in order and may synthesize registrations on demand.
func (r *Registry) RegistrationsFor(key string) []*Registration {
	r.mu.RLock()
	k := r.canonical(key)
	explicit := r.byKey[k]
	out := make([]*Registration, len(explicit))
	copy(out, explicit)
	sources := r.sources
	lookup := func(target string) []*Registration {
		return r.byKey[r.canonical(target)]
	}
	if len(out) == 0 {
		for _, s := range sources {
			out = append(out, s.RegistrationsFor(k, lookup)...)
		}
	}
	r.mu.RUnlock()
	return out
}

// Registrations returns a snapshot of every explicit registration, in
// registration order.
func (r *Registry) Registrations() []*Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Registration, len(r.order))
	copy(out, r.order)
	return out
}

// TaggedKeys returns the keys grouped under tag.
func (r *Registry) TaggedKeys(tag string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.tags[tag]))
	copy(out, r.tags[tag])
	return out
}

// Bound reports whether key has at least one explicit registration.
func (r *Registry) Bound(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byKey[r.canonical(key)]) > 0
}

// canonical resolves an alias to its canonical key (must hold mu).
func (r *Registry) canonical(key string) string {
	if target, ok := r.aliases[key]; ok {
		return target
	}
	return key
}
