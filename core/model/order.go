package model

import (
	"fmt"
	"time"
)

// Order represents a single kitchen order moving from preparation to pickup.
type Order struct {
	ID       string
	Name     string        // display label, no effect on dispatch
	PrepTime time.Duration // preparation timer length

	CreatedAt time.Time // set at admission
	ReadyAt   time.Time // set when preparation completes, zero before
}

// Validate checks that the order is admissible.
func (o Order) Validate() error {
	if o.ID == "" {
		return fmt.Errorf("order id must not be empty")
	}
	if o.PrepTime < 0 {
		return fmt.Errorf("order %s: prep time must not be negative", o.ID)
	}
	return nil
}

// Ready reports whether preparation has completed.
func (o Order) Ready() bool {
	return !o.ReadyAt.IsZero()
}
