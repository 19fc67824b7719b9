package app

import (
	"fmt"
	"log"
	"net/http"

	"github.com/km-arc/go-foundry/framework/config"
	"github.com/km-arc/go-foundry/framework/container"
	"github.com/km-arc/go-foundry/framework/providers"
	"github.com/km-arc/go-foundry/framework/routing"
)

// Application is the top-level bootstrapper. It owns a container.Builder,
// registers the framework's core providers on it, and produces the finished
// Container in Build.
type Application struct {
	Builder *container.Builder

	container *container.Container
}

// New creates an application with the core framework providers registered,
// in fixed order: config, routing.
func New(envFiles ...string) *Application {
	b := container.NewBuilder()

	mustRegister(b, &providers.ConfigServiceProvider{EnvFiles: envFiles})
	mustRegister(b, &providers.RoutingServiceProvider{})

	return &Application{Builder: b}
}

func mustRegister(b *container.Builder, p container.ServiceProvider) {
	if err := b.RegisterProvider(p); err != nil {
		panic(err)
	}
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(p container.ServiceProvider) error {
	return a.Builder.RegisterProvider(p)
}

// Build runs the builder once and keeps the finished container. Subsequent
// calls return the same container.
func (a *Application) Build() (*container.Container, error) {
	if a.container != nil {
		return a.container, nil
	}
	c, err := a.Builder.Build(container.BuildDefault)
	if err != nil {
		return nil, err
	}
	a.container = c
	return c, nil
}

// Container returns the built container, or nil before Build.
func (a *Application) Container() *container.Container { return a.container }

// Config resolves *config.Config from the built container.
func (a *Application) Config() *config.Config {
	return container.MustResolve[*config.Config](a.container, "config")
}

// Router resolves *routing.Router from the built container.
func (a *Application) Router() *routing.Router {
	return container.MustResolve[*routing.Router](a.container, "router")
}

// Run builds the application (if needed) and starts the HTTP server.
func (a *Application) Run() error {
	if _, err := a.Build(); err != nil {
		return err
	}
	cfg := a.Config()
	router := a.Router()
	addr := ":" + cfg.App.Port
	fmt.Printf("%s listening on http://localhost%s  [%s]\n",
		cfg.App.Name, addr, cfg.App.Env)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Printf("server error: %v", err)
		return err
	}
	return nil
}

// Environment returns the APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }
