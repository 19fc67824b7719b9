package main

import (
	"log"
	"net/http"
	"time"

	"github.com/km-arc/go-foundry/framework/app"
	"github.com/km-arc/go-foundry/framework/container"
	gohttp "github.com/km-arc/go-foundry/framework/http"
	"github.com/km-arc/go-foundry/framework/routing"
)

func main() {
	application := app.New() // loads .env automatically

	if err := application.Register(&appProvider{}); err != nil {
		log.Fatal(err)
	}
	if err := application.Run(); err != nil {
		log.Fatal(err)
	}
}

// appProvider registers the demo services and mounts the routes once the
// container is built.
type appProvider struct{ container.BaseProvider }

func (p *appProvider) Register(r *container.Registry) error {
	// Constructed and started eagerly during Build.
	r.Register("uptime", func(*container.Container) (any, error) {
		return &uptimeTracker{}, nil
	}, container.Singleton(), container.AsStartable())

	r.Register("greetings", func(*container.Container) (any, error) {
		return map[string]string{
			"en": "Hello",
			"ga": "Dia dhuit",
			"fr": "Bonjour",
		}, nil
	}, container.Singleton(), container.AsAutoActivated())
	return nil
}

func (p *appProvider) Boot(c *container.Container) error {
	router := container.MustResolve[*routing.Router](c, "router")
	up := container.MustResolve[*uptimeTracker](c, "uptime")

	// Deferred handle from the default lazy source; the map itself was
	// already auto-activated, this just avoids re-resolving per request.
	greetings, err := container.Resolve[*container.Lazy](c, "lazy:greetings")
	if err != nil {
		return err
	}

	router.Get("/", func(w http.ResponseWriter, req *http.Request) {
		gohttp.NewResponse(w).Success(map[string]any{"message": "Welcome to Foundry!"})
	})

	router.Prefix("/api/v1", func(api *routing.Router) {
		api.Get("/status", func(w http.ResponseWriter, req *http.Request) {
			gohttp.NewResponse(w).Success(map[string]any{"uptime": up.Uptime().String()})
		})

		api.Get("/greetings/{lang}", func(w http.ResponseWriter, req *http.Request) {
			res := gohttp.NewResponse(w)
			table, err := greetings.Get()
			if err != nil {
				res.ServerError()
				return
			}
			lang := routing.Param(req, "lang")
			if msg, ok := table.(map[string]string)[lang]; ok {
				res.Success(map[string]any{"greeting": msg})
				return
			}
			res.NotFound("No greeting for language: " + lang)
		})
	})
	return nil
}

// uptimeTracker records when the application started serving.
type uptimeTracker struct {
	started time.Time
}

func (u *uptimeTracker) Start() error {
	u.started = time.Now()
	return nil
}

func (u *uptimeTracker) Uptime() time.Duration {
	return time.Since(u.started)
}
