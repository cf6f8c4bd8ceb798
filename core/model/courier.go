package model

import (
	"fmt"
	"time"
)

// Courier represents a courier waiting at the counter for a ready order.
type Courier struct {
	ID        string
	ArrivedAt time.Time // set at admission
}

// Validate checks that the courier is admissible.
func (c Courier) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("courier id must not be empty")
	}
	return nil
}
