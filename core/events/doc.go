// Package events defines the kitchen events emitted on the event bus.
//
// Available event types:
//   - OrderReadyEvent: an order finished preparation
//   - CourierArrivedEvent: a courier joined the waiting set
//   - DispatchEvent: a ready order was handed to a waiting courier
package events
