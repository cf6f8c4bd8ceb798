package app

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudkitchen/dispatch/config"
	"github.com/cloudkitchen/dispatch/core/events"
	"github.com/cloudkitchen/dispatch/core/kitchen"
	coremetrics "github.com/cloudkitchen/dispatch/core/metrics"
	"github.com/cloudkitchen/dispatch/infra/logger"
	"github.com/cloudkitchen/dispatch/infra/metrics"
	"github.com/cloudkitchen/dispatch/internal/eventbus"
	"github.com/cloudkitchen/dispatch/loader"
	"github.com/cloudkitchen/dispatch/simulator"
)

// Service wires the mediator to the order loader, the courier source and the
// configured metrics sinks.
type Service struct {
	Mediator *kitchen.Mediator
	bus      *eventbus.Bus[any]
	log      logger.Logger
	cfg      *config.Config
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.MetricsSink
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	policy, err := policyFor(cfg.Dispatch.Policy)
	if err != nil {
		return nil, err
	}
	bus := eventbus.New[any](cfg.Dispatch.BusBuffer)
	med, err := kitchen.NewMediator(policy, logg, sink, bus)
	if err != nil {
		return nil, fmt.Errorf("mediator: %w", err)
	}
	return &Service{Mediator: med, bus: bus, log: logg, cfg: cfg}, nil
}

func policyFor(name string) (kitchen.DispatchPolicy, error) {
	switch name {
	case "", "fifo":
		return kitchen.FIFOPolicy{}, nil
	case "matched":
		return kitchen.MatchedPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown dispatch policy %s", name)
	}
}

// Run admits the configured orders, streams courier arrivals into the
// mediator and blocks until the kitchen is quiescent or the context is
// canceled. The aggregate averages are logged before returning.
func (s *Service) Run(ctx context.Context) error {
	sub := s.bus.Subscribe()
	go s.tail(sub)
	defer s.Mediator.LogAverages()

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	if s.cfg.Orders.Path != "" {
		orders, err := loader.Load(s.cfg.Orders.Path)
		if err != nil {
			return fmt.Errorf("load orders: %w", err)
		}
		s.log.Infof("admitting %d orders", len(orders))
		for _, o := range orders {
			if err := s.Mediator.AddOrder(o); err != nil {
				s.log.Warnf("order %s rejected: %v", o.ID, err)
			}
		}
	}

	src, err := simulator.NewSource(simulator.ArrivalConfig{
		Count:    s.cfg.Couriers.Count,
		MinDelay: secondsToDuration(s.cfg.Couriers.MinDelaySeconds),
		MaxDelay: secondsToDuration(s.cfg.Couriers.MaxDelaySeconds),
		Seed:     s.cfg.Couriers.Seed,
	})
	if err != nil {
		return err
	}
	if err := src.Run(ctx, s.Mediator.AddCourier); err != nil {
		return fmt.Errorf("courier source: %w", err)
	}

	return s.waitQuiescent(ctx)
}

// tail mirrors bus events into the structured log.
func (s *Service) tail(sub <-chan any) {
	for e := range sub {
		switch ev := e.(type) {
		case events.OrderReadyEvent:
			s.log.Debugf("order %s (%s) ready for pickup", ev.Order.ID, ev.Order.Name)
		case events.CourierArrivedEvent:
			s.log.Debugf("courier %s waiting", ev.Courier.ID)
		case events.DispatchEvent:
			s.log.Debugw("dispatch", map[string]any{
				"order":        ev.OrderID,
				"courier":      ev.CourierID,
				"food_wait":    ev.FoodWait.String(),
				"courier_wait": ev.CourierWait.String(),
			})
		}
	}
}

func (s *Service) waitQuiescent(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if s.Mediator.Quiescent() {
				return nil
			}
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error { return s.Mediator.Close() }

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
