package events

import (
	"time"

	"github.com/cloudkitchen/dispatch/core/model"
)

// OrderReadyEvent is published when an order finishes preparation.
type OrderReadyEvent struct {
	Order model.Order
}

// CourierArrivedEvent is published when a courier is admitted to the waiting set.
type CourierArrivedEvent struct {
	Courier model.Courier
}

// DispatchEvent is published for each completed order/courier pairing.
type DispatchEvent struct {
	OrderID      string
	CourierID    string
	FoodWait     time.Duration
	CourierWait  time.Duration
	DispatchedAt time.Time
}
