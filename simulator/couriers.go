// Package simulator generates synthetic courier arrivals for the kitchen.
package simulator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/cloudkitchen/dispatch/core/model"
)

// ArrivalConfig controls the synthetic courier arrival stream.
type ArrivalConfig struct {
	Count    int
	MinDelay time.Duration
	MaxDelay time.Duration
	Seed     int64 // 0 seeds from the clock
}

// Validate checks the configuration.
func (c ArrivalConfig) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("courier count must not be negative")
	}
	if c.MinDelay < 0 {
		return fmt.Errorf("min delay must not be negative")
	}
	if c.MaxDelay < c.MinDelay {
		return fmt.Errorf("max delay must not be below min delay")
	}
	return nil
}

// Source emits couriers at jittered intervals.
type Source struct {
	cfg ArrivalConfig
	rng *rand.Rand
}

// NewSource creates a Source for the given configuration.
func NewSource(cfg ArrivalConfig) (*Source, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("courier source: %w", err)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{cfg: cfg, rng: rand.New(rand.NewSource(seed))}, nil
}

// Run emits cfg.Count couriers through admit, waiting a random delay in
// [MinDelay, MaxDelay] before each one. It stops early when the context is
// canceled or admit fails.
func (s *Source) Run(ctx context.Context, admit func(model.Courier) error) error {
	for i := 0; i < s.cfg.Count; i++ {
		delay := s.cfg.MinDelay
		if span := s.cfg.MaxDelay - s.cfg.MinDelay; span > 0 {
			delay += time.Duration(s.rng.Int63n(int64(span) + 1))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		c := model.Courier{ID: fmt.Sprintf("cour-%04d-%s", i+1, uuid.NewString()[:8])}
		if err := admit(c); err != nil {
			return fmt.Errorf("admit courier %s: %w", c.ID, err)
		}
	}
	return nil
}
