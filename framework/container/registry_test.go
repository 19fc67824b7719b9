package container_test

import (
	"errors"
	"testing"

	"github.com/km-arc/go-foundry/framework/container"
)

// build runs the callback through a fresh builder and returns the container.
func build(t *testing.T, configure container.ConfigureFunc) *container.Container {
	t.Helper()
	b := container.NewBuilder()
	if _, err := b.RegisterCallback(configure); err != nil {
		t.Fatalf("RegisterCallback: %v", err)
	}
	c, err := b.Build(container.BuildDefault)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return c
}

func TestRegistry_SingletonResolvedOnce(t *testing.T) {
	calls := 0
	c := build(t, func(r *container.Registry) error {
		r.Register("svc", func(*container.Container) (any, error) {
			calls++
			return &struct{ n int }{calls}, nil
		}, container.Singleton())
		return nil
	})

	first, _ := c.Make("svc")
	second, _ := c.Make("svc")

	if calls != 1 {
		t.Errorf("factory calls: got %d, want 1", calls)
	}
	if first != second {
		t.Error("singleton should return the same instance")
	}
}

func TestRegistry_TransientResolvedFresh(t *testing.T) {
	calls := 0
	c := build(t, func(r *container.Registry) error {
		r.Register("svc", func(*container.Container) (any, error) {
			calls++
			return calls, nil
		})
		return nil
	})

	_, _ = c.Make("svc")
	_, _ = c.Make("svc")

	if calls != 2 {
		t.Errorf("factory calls: got %d, want 2", calls)
	}
}

func TestRegistry_Instance(t *testing.T) {
	cfg := &struct{ Name string }{"foundry"}
	c := build(t, func(r *container.Registry) error {
		r.Instance("config", cfg)
		return nil
	})

	got, err := container.Resolve[*struct{ Name string }](c, "config")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != cfg {
		t.Error("Instance should resolve to the registered value")
	}
}

func TestRegistry_Alias(t *testing.T) {
	c := build(t, func(r *container.Registry) error {
		r.Instance("cache", "redis")
		r.Alias("cache", "cacheManager")
		return nil
	})

	got, err := c.Make("cacheManager")
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if got != "redis" {
		t.Errorf("alias resolution: got %v, want 'redis'", got)
	}
}

func TestRegistry_LaterRegistrationOverrides(t *testing.T) {
	c := build(t, func(r *container.Registry) error {
		r.Instance("driver", "mysql")
		r.Instance("driver", "postgres")
		return nil
	})

	got, _ := c.Make("driver")
	if got != "postgres" {
		t.Errorf("override: got %v, want 'postgres'", got)
	}
	if n := len(c.Registry().RegistrationsFor("driver")); n != 2 {
		t.Errorf("RegistrationsFor: got %d registrations, want 2", n)
	}
}

func TestRegistry_MakeUnknownKey(t *testing.T) {
	c := build(t, func(*container.Registry) error { return nil })

	_, err := c.Make("nope")
	var resErr *container.ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("want *ResolutionError, got %v", err)
	}
	if resErr.Key != "nope" {
		t.Errorf("error key: got %q, want 'nope'", resErr.Key)
	}
}

func TestRegistry_TaggedAggregation(t *testing.T) {
	c := build(t, func(r *container.Registry) error {
		r.Instance("cpu", "cpu-report")
		r.Instance("mem", "mem-report")
		r.Tag("reports", "cpu", "mem")
		return nil
	})

	reports, err := c.Tagged("reports")
	if err != nil {
		t.Fatalf("Tagged: %v", err)
	}
	if len(reports) != 2 || reports[0] != "cpu-report" || reports[1] != "mem-report" {
		t.Errorf("Tagged: got %v", reports)
	}
}

func TestRegistry_RegistrationsSnapshotKeepsOrder(t *testing.T) {
	c := build(t, func(r *container.Registry) error {
		r.Instance("a", 1)
		r.Instance("b", 2)
		r.Instance("c", 3)
		return nil
	})

	regs := c.Registry().Registrations()
	want := []string{"a", "b", "c"}
	if len(regs) != len(want) {
		t.Fatalf("Registrations: got %d, want %d", len(regs), len(want))
	}
	for i, reg := range regs {
		if reg.Key() != want[i] {
			t.Errorf("registration %d: got %q, want %q", i, reg.Key(), want[i])
		}
	}
}

func TestRegistration_MetadataIsMutable(t *testing.T) {
	c := build(t, func(r *container.Registry) error {
		r.Instance("svc", "v")
		return nil
	})

	reg := c.Registry().RegistrationsFor("svc")[0]
	reg.Metadata()["note"] = "annotated"
	if c.Registry().RegistrationsFor("svc")[0].Metadata()["note"] != "annotated" {
		t.Error("metadata writes should be visible through the registry")
	}
}

func TestResolve_TypeMismatch(t *testing.T) {
	c := build(t, func(r *container.Registry) error {
		r.Instance("svc", "a string")
		return nil
	})

	_, err := container.Resolve[int](c, "svc")
	var resErr *container.ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("want *ResolutionError, got %v", err)
	}
}

func TestContainer_FactoryErrorWrapped(t *testing.T) {
	boom := errors.New("cannot connect")
	c := build(t, func(r *container.Registry) error {
		r.Register("db", func(*container.Container) (any, error) {
			return nil, boom
		})
		return nil
	})

	_, err := c.Make("db")
	if !errors.Is(err, boom) {
		t.Errorf("cause chain should contain the factory error, got %v", err)
	}
	var resErr *container.ResolutionError
	if !errors.As(err, &resErr) || resErr.Key != "db" {
		t.Errorf("want ResolutionError naming 'db', got %v", err)
	}
}
