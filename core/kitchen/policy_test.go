package kitchen

import (
	"testing"
	"time"

	"github.com/cloudkitchen/dispatch/core/model"
)

func ordersAt(t0 time.Time, ids ...string) []model.Order {
	out := make([]model.Order, len(ids))
	for i, id := range ids {
		out[i] = model.Order{ID: id, ReadyAt: t0.Add(time.Duration(i) * time.Second)}
	}
	return out
}

func couriersAt(t0 time.Time, ids ...string) []model.Courier {
	out := make([]model.Courier, len(ids))
	for i, id := range ids {
		out[i] = model.Courier{ID: id, ArrivedAt: t0.Add(time.Duration(i) * time.Second)}
	}
	return out
}

func TestFIFOSelectPairsEmpty(t *testing.T) {
	p := FIFOPolicy{}
	t0 := time.Now()
	if got := p.SelectPairs(nil, couriersAt(t0, "c1")); len(got) != 0 {
		t.Fatalf("pairs from empty ready set: %v", got)
	}
	if got := p.SelectPairs(ordersAt(t0, "o1"), nil); len(got) != 0 {
		t.Fatalf("pairs from empty waiting set: %v", got)
	}
}

func TestFIFOSelectPairsOrder(t *testing.T) {
	t0 := time.Now()
	ready := ordersAt(t0, "o1", "o2", "o3")
	// Present the couriers out of arrival order; the policy must sort by wait.
	waiting := []model.Courier{
		{ID: "c2", ArrivedAt: t0.Add(time.Second)},
		{ID: "c1", ArrivedAt: t0},
	}
	got := FIFOPolicy{}.SelectPairs(ready, waiting)
	want := []Pair{{OrderID: "o1", CourierID: "c1"}, {OrderID: "o2", CourierID: "c2"}}
	if len(got) != len(want) {
		t.Fatalf("got %d pairs, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pair %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFIFOTieBreakByInsertionOrder(t *testing.T) {
	t0 := time.Now()
	ready := []model.Order{
		{ID: "first", ReadyAt: t0},
		{ID: "second", ReadyAt: t0},
	}
	waiting := couriersAt(t0, "c1")
	got := FIFOPolicy{}.SelectPairs(ready, waiting)
	if len(got) != 1 || got[0].OrderID != "first" {
		t.Fatalf("tie not broken by insertion order: %v", got)
	}
}

func TestMatchedSelectsSamePairsAsFIFO(t *testing.T) {
	t0 := time.Now()
	ready := ordersAt(t0, "o1", "o2", "o3")
	waiting := couriersAt(t0, "c1", "c2")
	fifo := FIFOPolicy{}.SelectPairs(append([]model.Order(nil), ready...), append([]model.Courier(nil), waiting...))
	matched := MatchedPolicy{}.SelectPairs(append([]model.Order(nil), ready...), append([]model.Courier(nil), waiting...))
	if len(fifo) != len(matched) {
		t.Fatalf("pair counts differ: %d vs %d", len(fifo), len(matched))
	}
	for i := range fifo {
		if fifo[i] != matched[i] {
			t.Fatalf("pair %d differs: fifo=%v matched=%v", i, fifo[i], matched[i])
		}
	}
}

func TestMatchedSinglePair(t *testing.T) {
	t0 := time.Now()
	got := MatchedPolicy{}.SelectPairs(ordersAt(t0, "o1"), couriersAt(t0, "c1"))
	if len(got) != 1 || got[0] != (Pair{OrderID: "o1", CourierID: "c1"}) {
		t.Fatalf("got %v, want single (o1, c1)", got)
	}
}
