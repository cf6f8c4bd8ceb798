// Package loader decodes order lists from JSON or YAML files for admission
// into the kitchen mediator.
package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cloudkitchen/dispatch/core/model"
)

// OrderDef is the on-disk shape of one order.
type OrderDef struct {
	ID              string  `json:"id" yaml:"id"`
	Name            string  `json:"name" yaml:"name"`
	PrepTimeSeconds float64 `json:"prepTimeSeconds" yaml:"prep_time_seconds"`
}

// ToModel converts the definition to a model order. CreatedAt is left unset;
// the mediator stamps it at admission.
func (d OrderDef) ToModel() model.Order {
	return model.Order{
		ID:       d.ID,
		Name:     d.Name,
		PrepTime: time.Duration(d.PrepTimeSeconds * float64(time.Second)),
	}
}

// Load reads an order list from a JSON or YAML file, selected by extension.
func Load(path string) ([]model.Order, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return Decode(f, "yaml")
	case ".json":
		return Decode(f, "json")
	default:
		return nil, fmt.Errorf("unsupported order file format: %s", ext)
	}
}

// Decode reads an order list from r in the given format.
func Decode(r io.Reader, format string) ([]model.Order, error) {
	var defs []OrderDef
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&defs); err != nil {
			return nil, err
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&defs); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	orders := make([]model.Order, 0, len(defs))
	for i, d := range defs {
		o := d.ToModel()
		if err := o.Validate(); err != nil {
			return nil, fmt.Errorf("order %d: %w", i, err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}
