package app_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/km-arc/go-foundry/framework/app"
	"github.com/km-arc/go-foundry/framework/container"
	"github.com/km-arc/go-foundry/framework/routing"
)

// routesProvider mounts one route during boot.
type routesProvider struct {
	container.BaseProvider
}

func (p *routesProvider) Boot(c *container.Container) error {
	router := container.MustResolve[*routing.Router](c, "router")
	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return nil
}

func TestApplication_BuildResolvesCoreServices(t *testing.T) {
	t.Setenv("APP_ENV", "testing")
	application := app.New("testdata/missing.env")

	c, err := application.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if !c.Bound("config") {
		t.Error("config should be registered")
	}
	if !c.Bound("router") {
		t.Error("router should be registered")
	}
	if !application.IsTesting() {
		t.Errorf("environment: got %q", application.Environment())
	}
}

func TestApplication_BuildIsIdempotent(t *testing.T) {
	application := app.New("testdata/missing.env")

	first, err := application.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	second, err := application.Build()
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}
	if first != second {
		t.Error("Build should return the same container on repeat calls")
	}
}

func TestApplication_ProviderRoutesServed(t *testing.T) {
	application := app.New("testdata/missing.env")
	if err := application.Register(&routesProvider{}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := application.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	application.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("/health: got %d", rec.Code)
	}
}
