// Package kitchen implements the order-dispatch mediator: it owns the
// pending, ready and waiting sets, runs one preparation timer per order,
// matches ready orders to waiting couriers through a pluggable dispatch
// policy and records the resulting wait-time samples.
package kitchen

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cloudkitchen/dispatch/core/events"
	"github.com/cloudkitchen/dispatch/core/logger"
	"github.com/cloudkitchen/dispatch/core/metrics"
	"github.com/cloudkitchen/dispatch/core/model"
	"github.com/cloudkitchen/dispatch/internal/eventbus"
)

// ErrClosed is returned for admissions after Close.
var ErrClosed = errors.New("kitchen: mediator closed")

// Mediator coordinates orders, couriers and the active dispatch policy.
// A single mutex guards the three sets and the two sample sequences; policy
// invocation happens under the lock on snapshot copies, while observer
// notification and bus/sink publication happen outside it so observers may
// call back into the mediator without deadlocking.
type Mediator struct {
	mu      sync.Mutex
	policy  DispatchPolicy
	pending []model.Order
	ready   []model.Order
	waiting []model.Courier

	foodWait    []time.Duration
	courierWait []time.Duration

	timerSeq uint64
	timers   map[uint64]*time.Timer
	closed   bool

	observers *observerRegistry
	log       logger.Logger
	sink      metrics.MetricsSink
	bus       *eventbus.Bus[any]
}

// NewMediator creates a mediator using the given dispatch policy. The logger,
// sink and bus are optional; nil values disable the corresponding output.
func NewMediator(policy DispatchPolicy, log logger.Logger, sink metrics.MetricsSink, bus *eventbus.Bus[any]) (*Mediator, error) {
	if policy == nil {
		return nil, fmt.Errorf("kitchen: nil policy provided to NewMediator")
	}
	if log == nil {
		log = nopLogger{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Mediator{
		policy:    policy,
		timers:    make(map[uint64]*time.Timer),
		observers: newObserverRegistry(log),
		log:       log,
		sink:      sink,
		bus:       bus,
	}, nil
}

// SetPolicy replaces the active dispatch policy. It takes effect on the next
// dispatch attempt and is safe to call while orders and couriers are in flight.
func (m *Mediator) SetPolicy(policy DispatchPolicy) {
	if policy == nil {
		m.log.Warnf("ignoring nil dispatch policy")
		return
	}
	m.mu.Lock()
	m.policy = policy
	m.mu.Unlock()
}

// RegisterOrderReadyObserver appends an observer notified once per order that
// finishes preparation. Notification order is registration order.
func (m *Mediator) RegisterOrderReadyObserver(obs OrderReadyObserver) {
	m.observers.registerOrderReady(obs)
}

// RegisterCourierArrivalObserver appends an observer notified once per
// admitted courier. Notification order is registration order.
func (m *Mediator) RegisterCourierArrivalObserver(obs CourierArrivalObserver) {
	m.observers.registerCourierArrival(obs)
}

// AddOrder admits an order into the pending set and starts its preparation
// timer. Invalid orders are rejected without mutating any state. Duplicate
// IDs are the caller's responsibility; each admission gets its own timer.
func (m *Mediator) AddOrder(o model.Order) error {
	if err := o.Validate(); err != nil {
		return fmt.Errorf("add order: %w", err)
	}
	o.CreatedAt = time.Now()
	o.ReadyAt = time.Time{}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.pending = append(m.pending, o)
	seq := m.timerSeq
	m.timerSeq++
	// The timer callback runs on the shared runtime timer pool; it blocks on
	// the mutex held here, so registering the timer before unlocking is safe
	// even for zero prep times.
	m.timers[seq] = time.AfterFunc(o.PrepTime, func() {
		m.finishPrep(o.ID, seq)
	})
	m.mu.Unlock()

	m.log.Debugf("admitted order %s (%s), prep time %s", o.ID, o.Name, o.PrepTime)
	m.dispatch()
	return nil
}

// AddCourier admits a courier into the waiting set, notifies the arrival
// observers and triggers a dispatch attempt.
func (m *Mediator) AddCourier(c model.Courier) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("add courier: %w", err)
	}
	c.ArrivedAt = time.Now()

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.waiting = append(m.waiting, c)
	m.mu.Unlock()

	m.log.Debugf("courier %s arrived", c.ID)
	m.publish(events.CourierArrivedEvent{Courier: c})
	m.observers.notifyCourierArrival(c)
	m.dispatch()
	return nil
}

// finishPrep moves the order from pending to ready exactly once, then
// notifies the ready observers and triggers a dispatch attempt.
func (m *Mediator) finishPrep(id string, seq uint64) {
	m.mu.Lock()
	delete(m.timers, seq)
	if m.closed {
		m.mu.Unlock()
		return
	}
	idx := -1
	for i, o := range m.pending {
		if o.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return
	}
	o := m.pending[idx]
	m.pending = append(m.pending[:idx], m.pending[idx+1:]...)
	o.ReadyAt = time.Now()
	m.ready = append(m.ready, o)
	m.mu.Unlock()

	m.log.Debugf("order %s ready after %s", o.ID, o.PrepTime)
	m.publish(events.OrderReadyEvent{Order: o})
	m.observers.notifyOrderReady(o)
	m.dispatch()
}

// dispatch asks the active policy for pairs over a consistent snapshot and
// removes each feasible pair from both sets, recording one food-wait and one
// courier-wait sample per pair.
func (m *Mediator) dispatch() {
	m.mu.Lock()
	if len(m.ready) == 0 || len(m.waiting) == 0 {
		m.mu.Unlock()
		return
	}
	readySnap := append([]model.Order(nil), m.ready...)
	waitingSnap := append([]model.Courier(nil), m.waiting...)
	pairs := m.policy.SelectPairs(readySnap, waitingSnap)

	now := time.Now()
	var (
		recs       []metrics.DispatchRecord
		evs        []events.DispatchEvent
		infeasible []Pair
	)
	for _, p := range pairs {
		oi := indexOrder(m.ready, p.OrderID)
		ci := indexCourier(m.waiting, p.CourierID)
		if oi < 0 || ci < 0 {
			infeasible = append(infeasible, p)
			continue
		}
		o := m.ready[oi]
		c := m.waiting[ci]
		m.ready = append(m.ready[:oi], m.ready[oi+1:]...)
		m.waiting = append(m.waiting[:ci], m.waiting[ci+1:]...)

		foodWait := now.Sub(o.ReadyAt)
		if foodWait < 0 {
			foodWait = 0
		}
		courierWait := now.Sub(c.ArrivedAt)
		if courierWait < 0 {
			courierWait = 0
		}
		m.foodWait = append(m.foodWait, foodWait)
		m.courierWait = append(m.courierWait, courierWait)

		recs = append(recs, metrics.DispatchRecord{
			OrderID:      o.ID,
			CourierID:    c.ID,
			FoodWait:     foodWait,
			CourierWait:  courierWait,
			DispatchedAt: now,
		})
		evs = append(evs, events.DispatchEvent{
			OrderID:      o.ID,
			CourierID:    c.ID,
			FoodWait:     foodWait,
			CourierWait:  courierWait,
			DispatchedAt: now,
		})
	}
	readyLeft, waitingLeft := len(m.ready), len(m.waiting)
	m.mu.Unlock()

	for _, p := range infeasible {
		m.log.Warnf("pair (%s, %s) no longer feasible, skipping", p.OrderID, p.CourierID)
	}
	for _, ev := range evs {
		m.log.Infof("dispatched order %s to courier %s (food wait %s, courier wait %s)",
			ev.OrderID, ev.CourierID, ev.FoodWait, ev.CourierWait)
		m.publish(ev)
	}
	if len(recs) > 0 {
		if err := m.sink.RecordDispatch(recs); err != nil {
			m.log.Errorf("metrics error: %v", err)
		}
		if qr, ok := m.sink.(metrics.QueueSizeRecorder); ok {
			if err := qr.RecordQueueSizes(readyLeft, waitingLeft); err != nil {
				m.log.Errorf("queue size metrics error: %v", err)
			}
		}
	}
}

// Orders returns a copy of the pending set.
func (m *Mediator) Orders() []model.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Order(nil), m.pending...)
}

// ReadyOrders returns a copy of the ready set.
func (m *Mediator) ReadyOrders() []model.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Order(nil), m.ready...)
}

// WaitingCouriers returns a copy of the waiting set.
func (m *Mediator) WaitingCouriers() []model.Courier {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Courier(nil), m.waiting...)
}

// FoodWaitTimes returns a copy of the recorded food-wait samples.
func (m *Mediator) FoodWaitTimes() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.foodWait...)
}

// CourierWaitTimes returns a copy of the recorded courier-wait samples.
func (m *Mediator) CourierWaitTimes() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.courierWait...)
}

// Quiescent reports whether no preparation timer is outstanding and no
// further dispatch is possible with the current sets.
func (m *Mediator) Quiescent() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending) == 0 && (len(m.ready) == 0 || len(m.waiting) == 0)
}

// Close stops all outstanding preparation timers and closes the bus.
// Admissions after Close return ErrClosed.
func (m *Mediator) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	for seq, t := range m.timers {
		t.Stop()
		delete(m.timers, seq)
	}
	m.mu.Unlock()
	if m.bus != nil {
		m.bus.Close()
	}
	return nil
}

func (m *Mediator) publish(e any) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}

func indexOrder(orders []model.Order, id string) int {
	for i, o := range orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func indexCourier(couriers []model.Courier, id string) int {
	for i, c := range couriers {
		if c.ID == id {
			return i
		}
	}
	return -1
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
