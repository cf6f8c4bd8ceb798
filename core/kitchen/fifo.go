package kitchen

import (
	"sort"

	"github.com/cloudkitchen/dispatch/core/model"
)

// FIFOPolicy pairs the longest-ready order with the longest-waiting courier,
// repeatedly, until one of the two queues is exhausted. Equal timestamps fall
// back to admission order through the stable sort.
type FIFOPolicy struct{}

// SelectPairs implements DispatchPolicy.
func (FIFOPolicy) SelectPairs(ready []model.Order, waiting []model.Courier) []Pair {
	sort.SliceStable(ready, func(i, j int) bool {
		return ready[i].ReadyAt.Before(ready[j].ReadyAt)
	})
	sort.SliceStable(waiting, func(i, j int) bool {
		return waiting[i].ArrivedAt.Before(waiting[j].ArrivedAt)
	})
	n := len(ready)
	if len(waiting) < n {
		n = len(waiting)
	}
	pairs := make([]Pair, 0, n)
	for i := 0; i < n; i++ {
		pairs = append(pairs, Pair{OrderID: ready[i].ID, CourierID: waiting[i].ID})
	}
	return pairs
}
