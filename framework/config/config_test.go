package config_test

import (
	"testing"

	"github.com/km-arc/go-foundry/framework/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load("testdata/empty.env")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"App.Name", cfg.App.Name, "Foundry"},
		{"App.Env", cfg.App.Env, "local"},
		{"App.Port", cfg.App.Port, "8000"},
		{"App.URL", cfg.App.URL, "http://localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("APP_NAME", "MyApp")
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "9000")

	cfg := config.Load("testdata/empty.env")

	if cfg.App.Name != "MyApp" {
		t.Errorf("App.Name: got %q want %q", cfg.App.Name, "MyApp")
	}
	if cfg.App.Env != "production" {
		t.Errorf("App.Env: got %q want %q", cfg.App.Env, "production")
	}
	if cfg.App.Port != "9000" {
		t.Errorf("App.Port: got %q want %q", cfg.App.Port, "9000")
	}
}

func TestGet_Helpers(t *testing.T) {
	t.Setenv("CUSTOM_KEY", "custom")
	t.Setenv("CUSTOM_INT", "42")
	t.Setenv("CUSTOM_BOOL", "true")

	if got := config.Get("CUSTOM_KEY", "fallback"); got != "custom" {
		t.Errorf("Get: got %q", got)
	}
	if got := config.Get("MISSING_KEY", "fallback"); got != "fallback" {
		t.Errorf("Get fallback: got %q", got)
	}
	if got := config.GetInt("CUSTOM_INT", 0); got != 42 {
		t.Errorf("GetInt: got %d", got)
	}
	if got := config.GetInt("CUSTOM_KEY", 7); got != 7 {
		t.Errorf("GetInt non-numeric: got %d", got)
	}
	if got := config.GetBool("CUSTOM_BOOL", false); !got {
		t.Error("GetBool: got false, want true")
	}
}
