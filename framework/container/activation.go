package container

import "fmt"

// Startable is implemented by components that must be constructed eagerly at
// build time and given a chance to start before build hooks run.
type Startable interface {
	Start() error
}

// activationScanner performs the eager-activation sweep over a registry:
// first every unmarked Startable registration, then every unmarked
// AutoActivate registration. Each pass is independently idempotent — the
// activation marker on the registration's metadata guarantees at-most-once
// semantics per registry lifetime, across any number of Build and Update
// calls.
type activationScanner struct {
	ctr *Container
}

func (s activationScanner) scan() error {
	if err := s.startComponents(); err != nil {
		return err
	}
	return s.autoActivate()
}

// startComponents constructs and starts every unmarked Startable
// registration. Failures propagate unwrapped: the start hook is user-visible
// behavior and its error must keep full fidelity.
func (s activationScanner) startComponents() error {
	for _, reg := range s.ctr.registry.Registrations() {
		if !reg.startable || reg.activated() {
			continue
		}
		if err := s.start(reg); err != nil {
			return err
		}
	}
	return nil
}

func (s activationScanner) start(reg *Registration) error {
	// The marker is set on every exit path, success or failure: a failed
	// start must not be retried by a later scan.
	defer reg.markActivated()

	inst, err := s.ctr.Resolve(reg)
	if err != nil {
		return err
	}
	st, ok := inst.(Startable)
	if !ok {
		return fmt.Errorf("container: [%s] is registered as startable but %T does not implement Startable", reg.key, inst)
	}
	return st.Start()
}

// autoActivate constructs every unmarked AutoActivate registration. A
// resolution failure is wrapped in an ActivationError naming the offending
// registration, with the original failure preserved as its cause.
func (s activationScanner) autoActivate() error {
	for _, reg := range s.ctr.registry.Registrations() {
		if !reg.autoActivate || reg.activated() {
			continue
		}
		if err := s.activate(reg); err != nil {
			return err
		}
	}
	return nil
}

func (s activationScanner) activate(reg *Registration) error {
	defer reg.markActivated()

	if _, err := s.ctr.Resolve(reg); err != nil {
		return &ActivationError{Key: reg.key, Cause: err}
	}
	return nil
}
