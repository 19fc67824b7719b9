package container

import (
	"fmt"
	"sync"
)

// Container is the finished, queryable product of a build. It wraps the
// Registry it was built around plus the shared PropertyBag, and caches
// singleton instances.
type Container struct {
	registry   *Registry
	properties PropertyBag

	mu        sync.Mutex
	instances map[*Registration]any
}

func newContainer(registry *Registry, properties PropertyBag) *Container {
	return &Container{
		registry:   registry,
		properties: properties,
		instances:  make(map[*Registration]any),
	}
}

// Registry returns the wrapped registry.
func (c *Container) Registry() *Registry { return c.registry }

// Properties returns the shared property bag.
func (c *Container) Properties() PropertyBag { return c.properties }

// Resolve constructs an instance from one registration, honoring its
// singleton setting.
func (c *Container) Resolve(reg *Registration) (any, error) {
	if reg.singleton {
		c.mu.Lock()
		inst, ok := c.instances[reg]
		c.mu.Unlock()
		if ok {
			return inst, nil
		}
	}

	inst, err := reg.factory(c)
	if err != nil {
		return nil, &ResolutionError{Key: reg.key, Cause: err}
	}

	if reg.singleton {
		c.mu.Lock()
		c.instances[reg] = inst
		c.mu.Unlock()
	}
	return inst, nil
}

// Make resolves the service registered under key. When several registrations
// exist for the same key, the most recent one wins; earlier registrations
// stay reachable through RegistrationsFor.
func (c *Container) Make(key string) (any, error) {
	regs := c.registry.RegistrationsFor(key)
	if len(regs) == 0 {
		return nil, &ResolutionError{Key: key, Context: "no registration and no source produced one"}
	}
	return c.Resolve(regs[len(regs)-1])
}

// Tagged resolves every key grouped under tag, in tagging order.
func (c *Container) Tagged(tag string) ([]any, error) {
	keys := c.registry.TaggedKeys(tag)
	out := make([]any, 0, len(keys))
	for _, key := range keys {
		inst, err := c.Make(key)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

// Bound reports whether key is explicitly registered.
func (c *Container) Bound(key string) bool { return c.registry.Bound(key) }

// ── Generics helpers ──────────────────────────────────────────────────────────

// Resolve is a generic helper that calls Make and type-asserts the result.
//
//	cfg, err := container.Resolve[*config.Config](c, "config")
func Resolve[T any](c *Container, key string) (T, error) {
	var zero T
	inst, err := c.Make(key)
	if err != nil {
		return zero, err
	}
	typed, ok := inst.(T)
	if !ok {
		return zero, &ResolutionError{
			Key:     key,
			Context: fmt.Sprintf("resolved to %T, want %T", inst, zero),
		}
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on failure. Intended for bootstrap
// code where a missing binding is a programmer error.
func MustResolve[T any](c *Container, key string) T {
	typed, err := Resolve[T](c, key)
	if err != nil {
		panic(err)
	}
	return typed
}
