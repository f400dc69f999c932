package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if cfg.Service.Address != "127.0.0.1:4040" {
		t.Errorf("default address = %q", cfg.Service.Address)
	}
	if cfg.Store.Driver != "sqlite" {
		t.Errorf("default store driver = %q", cfg.Store.Driver)
	}
	if _, ok := cfg.Presets["small-maze"]; !ok {
		t.Error("default presets missing small-maze")
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
service:
  address: "0.0.0.0:9000"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Service.Address != "0.0.0.0:9000" {
		t.Errorf("address = %q, want override", cfg.Service.Address)
	}
	// Untouched sections keep their defaults
	if cfg.Store.Driver != "sqlite" {
		t.Errorf("store driver = %q, want default sqlite", cfg.Store.Driver)
	}
}

func TestLoadConfig_Presets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
presets:
  big-city:
    algorithm: city
    rows: 30
    cols: 30
    room_density: 0.7
    conn_density: 0.4
    seed: 12345
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	p, ok := cfg.Presets["big-city"]
	if !ok {
		t.Fatal("preset big-city not loaded")
	}
	if p.Algorithm != "city" || p.Rows != 30 || p.Seed != 12345 {
		t.Errorf("preset = %+v", p)
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("service: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err == nil {
		t.Error("malformed file should return the parse error")
	}
	if cfg == nil || cfg.Service.Address != "127.0.0.1:4040" {
		t.Error("malformed file should still yield defaults")
	}
}

func TestIsOriginAllowed_SameOrigin(t *testing.T) {
	cfg := &ServiceConfig{}
	tests := []struct {
		origin string
		host   string
		want   bool
	}{
		{"", "example.com", true}, // non-browser client
		{"http://example.com", "example.com", true},
		{"https://example.com", "example.com", true},
		{"http://evil.com", "example.com", false},
	}
	for _, tt := range tests {
		if got := cfg.IsOriginAllowed(tt.origin, tt.host); got != tt.want {
			t.Errorf("IsOriginAllowed(%q, %q) = %v, want %v", tt.origin, tt.host, got, tt.want)
		}
	}
}

func TestIsOriginAllowed_List(t *testing.T) {
	cfg := &ServiceConfig{AllowedOrigins: []string{"http://editor.local"}}
	if !cfg.IsOriginAllowed("http://editor.local", "whatever") {
		t.Error("listed origin should be allowed")
	}
	if cfg.IsOriginAllowed("http://other.local", "whatever") {
		t.Error("unlisted origin should be rejected")
	}

	wildcard := &ServiceConfig{AllowedOrigins: []string{"*"}}
	if !wildcard.IsOriginAllowed("http://anything.example", "host") {
		t.Error("wildcard should allow any origin")
	}
}
