package loader

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orders.json")
	data := `[
  {"id": "a8cfcb76", "name": "Banana Split", "prepTimeSeconds": 4},
  {"id": "58e9b5fe", "name": "McFlury", "prepTimeSeconds": 0.5}
]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	orders, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("got %d orders, want 2", len(orders))
	}
	if orders[0].ID != "a8cfcb76" || orders[0].PrepTime != 4*time.Second {
		t.Fatalf("bad first order %+v", orders[0])
	}
	if orders[1].PrepTime != 500*time.Millisecond {
		t.Fatalf("fractional prep time lost: %s", orders[1].PrepTime)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orders.yaml")
	data := "- id: o1\n  name: Burger\n  prep_time_seconds: 3\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	orders, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(orders) != 1 || orders[0].Name != "Burger" || orders[0].PrepTime != 3*time.Second {
		t.Fatalf("bad orders %+v", orders)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orders.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}

func TestDecodeRejectsInvalidOrder(t *testing.T) {
	data := `[{"id": "", "name": "Nameless", "prepTimeSeconds": 1}]`
	if _, err := Decode(bytes.NewBufferString(data), "json"); err == nil {
		t.Fatalf("expected error for empty id")
	}
	data = `[{"id": "o1", "prepTimeSeconds": -2}]`
	if _, err := Decode(bytes.NewBufferString(data), "json"); err == nil {
		t.Fatalf("expected error for negative prep time")
	}
}
