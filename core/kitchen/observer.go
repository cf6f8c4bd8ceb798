package kitchen

import (
	"sync"

	"github.com/cloudkitchen/dispatch/core/logger"
	"github.com/cloudkitchen/dispatch/core/model"
)

// OrderReadyObserver is notified when an order finishes preparation.
type OrderReadyObserver interface {
	OnOrderReady(order model.Order)
}

// CourierArrivalObserver is notified when a courier joins the waiting set.
type CourierArrivalObserver interface {
	OnCourierArrival(courier model.Courier)
}

// OrderReadyFunc adapts a function to the OrderReadyObserver interface.
type OrderReadyFunc func(model.Order)

func (f OrderReadyFunc) OnOrderReady(o model.Order) { f(o) }

// CourierArrivalFunc adapts a function to the CourierArrivalObserver interface.
type CourierArrivalFunc func(model.Courier)

func (f CourierArrivalFunc) OnCourierArrival(c model.Courier) { f(c) }

// observerRegistry fans notifications out to registered listeners in
// registration order. Delivery is synchronous; a panicking observer is
// logged and skipped so the remaining observers still run.
type observerRegistry struct {
	mu         sync.RWMutex
	orderReady []OrderReadyObserver
	arrival    []CourierArrivalObserver
	log        logger.Logger
}

func newObserverRegistry(log logger.Logger) *observerRegistry {
	return &observerRegistry{log: log}
}

func (r *observerRegistry) registerOrderReady(obs OrderReadyObserver) {
	r.mu.Lock()
	r.orderReady = append(r.orderReady, obs)
	r.mu.Unlock()
}

func (r *observerRegistry) registerCourierArrival(obs CourierArrivalObserver) {
	r.mu.Lock()
	r.arrival = append(r.arrival, obs)
	r.mu.Unlock()
}

func (r *observerRegistry) notifyOrderReady(o model.Order) {
	r.mu.RLock()
	subs := append([]OrderReadyObserver(nil), r.orderReady...)
	r.mu.RUnlock()
	for _, s := range subs {
		r.deliver(func() { s.OnOrderReady(o) })
	}
}

func (r *observerRegistry) notifyCourierArrival(c model.Courier) {
	r.mu.RLock()
	subs := append([]CourierArrivalObserver(nil), r.arrival...)
	r.mu.RUnlock()
	for _, s := range subs {
		r.deliver(func() { s.OnCourierArrival(c) })
	}
}

func (r *observerRegistry) deliver(notify func()) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Errorf("observer panic: %v", p)
		}
	}()
	notify()
}
