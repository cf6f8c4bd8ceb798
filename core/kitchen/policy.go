package kitchen

import "github.com/cloudkitchen/dispatch/core/model"

// Pair identifies one ready order matched with one waiting courier.
type Pair struct {
	OrderID   string
	CourierID string
}

// DispatchPolicy selects the pairs to hand out given point-in-time snapshots
// of the ready orders and waiting couriers. Implementations must be pure
// functions of their inputs: the mediator re-invokes the policy after every
// relevant state change instead of letting it retain state. The snapshots are
// copies and may be reordered freely.
type DispatchPolicy interface {
	SelectPairs(ready []model.Order, waiting []model.Courier) []Pair
}
