package container

// PropertyBag is arbitrary shared state attached to a Builder and every
// Container it produces. It is shared by reference, never copied: a scoped
// Builder handed an existing bag sees (and contributes to) the same entries
// as its parent, for the lifetime of the longest-lived holder.
//
// One entry is reserved: the ordered list of build hooks, stored under
// buildHooksKey. No synchronization — the bag assumes a single owning
// goroutine during the configuration phase.
type PropertyBag map[string]any

// buildHooksKey is the reserved bag entry holding the build-hook list.
const buildHooksKey = "__BuildHooks"

// BuildHook runs after a successful build, receiving the finished Container.
type BuildHook func(*Container) error

// hookList is the ordered, append-only list of build hooks.
type hookList struct {
	hooks []BuildHook
}

func (l *hookList) append(h BuildHook) { l.hooks = append(l.hooks, h) }

// run invokes every hook in registration order. A hook failure propagates
// immediately and aborts the remaining hooks.
func (l *hookList) run(c *Container) error {
	for _, h := range l.hooks {
		if err := h(c); err != nil {
			return err
		}
	}
	return nil
}

// NewPropertyBag creates a bag with the reserved hook entry already in place,
// so no later first-use side effect is observable.
func NewPropertyBag() PropertyBag {
	return PropertyBag{buildHooksKey: &hookList{}}
}

// buildHooks returns the bag's hook list, creating the reserved entry exactly
// once if a foreign bag was handed over without it.
func (p PropertyBag) buildHooks() *hookList {
	if l, ok := p[buildHooksKey].(*hookList); ok {
		return l
	}
	l := &hookList{}
	p[buildHooksKey] = l
	return l
}
