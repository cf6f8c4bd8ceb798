package kitchen

import "github.com/cloudkitchen/dispatch/core/model"

// MatchedPolicy pairs arrivals as they happen: a newly ready order takes the
// longest-waiting courier, a newly arrived courier takes the longest-ready
// order. For the pairing criteria implemented here it selects the same pairs
// as FIFOPolicy; it exists as a separate type so matchers with different
// criteria (food type, priority) can replace it without touching the mediator.
type MatchedPolicy struct{}

// SelectPairs implements DispatchPolicy.
func (MatchedPolicy) SelectPairs(ready []model.Order, waiting []model.Courier) []Pair {
	var pairs []Pair
	for len(ready) > 0 && len(waiting) > 0 {
		oi := 0
		for i := 1; i < len(ready); i++ {
			if ready[i].ReadyAt.Before(ready[oi].ReadyAt) {
				oi = i
			}
		}
		ci := 0
		for i := 1; i < len(waiting); i++ {
			if waiting[i].ArrivedAt.Before(waiting[ci].ArrivedAt) {
				ci = i
			}
		}
		pairs = append(pairs, Pair{OrderID: ready[oi].ID, CourierID: waiting[ci].ID})
		ready = append(ready[:oi], ready[oi+1:]...)
		waiting = append(waiting[:ci], waiting[ci+1:]...)
	}
	return pairs
}
