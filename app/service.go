// Package app wires configuration, logging, metrics and the solve engine
// into a runnable service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DRNaser/shift-optimizer-sub007/config"
	"github.com/DRNaser/shift-optimizer-sub007/core/events"
	coremetrics "github.com/DRNaser/shift-optimizer-sub007/core/metrics"
	"github.com/DRNaser/shift-optimizer-sub007/core/model"
	"github.com/DRNaser/shift-optimizer-sub007/core/solve"
	"github.com/DRNaser/shift-optimizer-sub007/infra/logger"
	"github.com/DRNaser/shift-optimizer-sub007/infra/metrics"
	"github.com/DRNaser/shift-optimizer-sub007/internal/eventbus"
)

// Service owns one solve engine and its observability wiring.
type Service struct {
	engine      *solve.Engine
	bus         *eventbus.Bus
	log         logger.Logger
	promEnabled bool
	promPort    string
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
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New()
	engine, err := solve.New(cfg.Solver, logger.New("engine"),
		solve.WithMetrics(sink), solve.WithBus(bus))
	if err != nil {
		bus.Close()
		return nil, err
	}

	s := &Service{
		engine:      engine,
		bus:         bus,
		log:         logg,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}
	go s.watch(bus.Subscribe())
	return s, nil
}

// Solve runs one solve over the given tour instances.
func (s *Service) Solve(ctx context.Context, tours []model.TourInstance) (*solve.Result, error) {
	start := time.Now()
	res, err := s.engine.Solve(ctx, tours)
	if err != nil {
		var coded interface{ Reason() string }
		if errors.As(err, &coded) {
			s.log.Errorf("solve aborted (%s): %v", coded.Reason(), err)
		} else {
			s.log.Errorf("solve aborted: %v", err)
		}
		return nil, err
	}
	s.log.Infof("solve finished in %s: headcount=%d passed=%v", time.Since(start).Round(time.Millisecond), res.Headcount, res.Passed)
	return res, nil
}

// ServeMetrics exposes the Prometheus endpoint until ctx is done. It is a
// no-op when the Prometheus sink is disabled.
func (s *Service) ServeMetrics(ctx context.Context) error {
	if !s.promEnabled {
		return nil
	}
	srv := &http.Server{Addr: ":" + s.promPort, Handler: promhttp.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// watch logs solve progress events from the bus.
func (s *Service) watch(ch <-chan eventbus.Event) {
	for ev := range ch {
		switch e := ev.(type) {
		case events.PhaseEvent:
			if e.Overrun {
				s.log.Warnf("phase %s overran its slice (used %s)", e.Phase, e.Used)
			} else {
				s.log.Debugf("phase %s done in %s", e.Phase, e.Used)
			}
		case events.RepairEvent:
			s.log.Debugf("%s repair added %d columns", e.Kind, e.Added)
		case events.ProbeEvent:
			s.log.Debugf("cap search settled at %d", e.Cap)
		case events.SolveFinished:
			s.log.Infof("solution %s: headcount=%d passed=%v reasons=%v", e.Signature[:12], e.Headcount, e.Passed, e.Reasons)
		}
	}
}

// Close releases the service resources.
func (s *Service) Close() error {
	s.bus.Close()
	return nil
}
