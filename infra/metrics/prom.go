package metrics

import (
	coremetrics "github.com/cloudkitchen/dispatch/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records dispatch events in Prometheus metrics.
type PromSink struct {
	dispatches  prometheus.Counter
	foodWait    prometheus.Histogram
	courierWait prometheus.Histogram
	ready       prometheus.Gauge
	waiting     prometheus.Gauge
}

// NewPromSink registers dispatch metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	dispatches := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kitchen_dispatches_total",
		Help: "Total number of order/courier pairs dispatched",
	})
	foodWait := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "kitchen_food_wait_seconds",
		Help:    "Time between an order becoming ready and its dispatch",
		Buckets: prometheus.DefBuckets,
	})
	courierWait := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "kitchen_courier_wait_seconds",
		Help:    "Time between a courier arriving and its dispatch",
		Buckets: prometheus.DefBuckets,
	})
	ready := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "kitchen_ready_orders",
		Help: "Orders on the counter waiting for a courier",
	})
	waiting := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "kitchen_waiting_couriers",
		Help: "Couriers waiting for an order",
	})

	if err := reg.Register(dispatches); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			dispatches = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(foodWait); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			foodWait = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(courierWait); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			courierWait = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(ready); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			ready = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(waiting); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			waiting = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{
		dispatches:  dispatches,
		foodWait:    foodWait,
		courierWait: courierWait,
		ready:       ready,
		waiting:     waiting,
	}, nil
}

// RecordDispatch increments the counter and observes both wait histograms
// for each dispatched pair.
func (s *PromSink) RecordDispatch(recs []coremetrics.DispatchRecord) error {
	for _, r := range recs {
		s.dispatches.Inc()
		s.foodWait.Observe(r.FoodWait.Seconds())
		s.courierWait.Observe(r.CourierWait.Seconds())
	}
	return nil
}

// RecordQueueSizes sets the ready and waiting gauges.
func (s *PromSink) RecordQueueSizes(ready, waiting int) error {
	s.ready.Set(float64(ready))
	s.waiting.Set(float64(waiting))
	return nil
}
