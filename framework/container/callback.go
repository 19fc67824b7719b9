package container

import "github.com/google/uuid"

// ConfigureFunc is a deferred configuration action executed against the
// Registry during Build or Update.
type ConfigureFunc func(*Registry) error

// DeferredCallback pairs a configuration action with a unique identity.
// It is immutable once created; execution does not consume it, and its
// identity stays stable and unique for the owning Builder's lifetime so
// advanced callers can keep addressing it after registration.
type DeferredCallback struct {
	id        uuid.UUID
	configure ConfigureFunc
}

func newDeferredCallback(fn ConfigureFunc) *DeferredCallback {
	return &DeferredCallback{id: uuid.New(), configure: fn}
}

// ID returns the callback's unique identity.
func (d *DeferredCallback) ID() uuid.UUID { return d.id }
