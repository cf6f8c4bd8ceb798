package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `orders:
  path: "orders.json"
couriers:
  count: 10
  min_delay_seconds: 0.5
  max_delay_seconds: 2
  seed: 42
dispatch:
  policy: "matched"
metrics:
  prometheus_enabled: true
  prometheus_port: "9200"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"orders.path", cfg.Orders.Path, "orders.json"},
		{"couriers.count", cfg.Couriers.Count, 10},
		{"couriers.min_delay_seconds", cfg.Couriers.MinDelaySeconds, 0.5},
		{"couriers.max_delay_seconds", cfg.Couriers.MaxDelaySeconds, 2.0},
		{"couriers.seed", cfg.Couriers.Seed, int64(42)},
		{"dispatch.policy", cfg.Dispatch.Policy, "matched"},
		{"dispatch.bus_buffer default", cfg.Dispatch.BusBuffer, 16},
		{"metrics.prometheus_enabled", cfg.Metrics.PrometheusEnabled, true},
		{"metrics.prometheus_port", cfg.Metrics.PrometheusPort, "9200"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"orders": {"path": "orders.json"}}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Dispatch.Policy != "fifo" {
		t.Errorf("default policy %s, want fifo", cfg.Dispatch.Policy)
	}
	if cfg.Metrics.PrometheusPort != "9091" {
		t.Errorf("default prometheus port %s", cfg.Metrics.PrometheusPort)
	}
}

func TestLoadRejectsBadPolicy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("dispatch:\n  policy: \"lifo\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}

func TestLoadRejectsBadCouriers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "couriers:\n  count: 1\n  min_delay_seconds: 5\n  max_delay_seconds: 1\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for inverted delays")
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	if _, err := Load("config.toml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
