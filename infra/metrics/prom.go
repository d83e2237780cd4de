package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/DRNaser/shift-optimizer-sub007/core/budget"
	coremetrics "github.com/DRNaser/shift-optimizer-sub007/core/metrics"
	"github.com/DRNaser/shift-optimizer-sub007/core/model"
)

// PromSink records solve outcomes in Prometheus metrics.
type PromSink struct {
	headcount prometheus.Gauge
	peakFleet prometheus.Gauge
	poolSize  prometheus.Gauge
	solves    *prometheus.CounterVec
	phases    *prometheus.HistogramVec
	repairs   prometheus.Counter
	probes    prometheus.Counter
	audit     *prometheus.GaugeVec
}

// NewPromSink registers solver metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		headcount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "roster_headcount",
			Help: "Drivers used by the last accepted solve",
		}),
		peakFleet: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "roster_peak_fleet",
			Help: "Maximum simultaneous tour concurrency of the last input",
		}),
		poolSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "roster_column_pool_size",
			Help: "Columns in the pool at the end of the last solve",
		}),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_solves_total",
			Help: "Total number of solves by audit verdict",
		}, []string{"passed"}),
		phases: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "roster_phase_seconds",
			Help:    "Wall-clock time spent per solve phase",
			Buckets: prometheus.DefBuckets,
		}, []string{"phase", "overrun"}),
		repairs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roster_repair_columns_total",
			Help: "Columns added by repair heuristics",
		}),
		probes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roster_cap_probes_total",
			Help: "Feasibility probes run by the driver-cap search",
		}),
		audit: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "roster_audit_violations",
			Help: "Violation count of the last solve per audit check",
		}, []string{"check"}),
	}
	for _, c := range []prometheus.Collector{s.headcount, s.peakFleet, s.poolSize, s.solves, s.phases, s.repairs, s.probes, s.audit} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return s, nil
}

// RecordSolve sets the summary gauges and counts the solve.
func (s *PromSink) RecordSolve(stats coremetrics.SolveStats) error {
	s.headcount.Set(float64(stats.Headcount))
	s.peakFleet.Set(float64(stats.PeakFleet))
	s.poolSize.Set(float64(stats.PoolSize))
	s.repairs.Add(float64(stats.Repairs))
	s.probes.Add(float64(stats.Probes))
	s.solves.WithLabelValues(strconv.FormatBool(stats.Passed)).Inc()
	return nil
}

// RecordPhase observes one phase duration.
func (s *PromSink) RecordPhase(t budget.PhaseTiming) error {
	s.phases.WithLabelValues(string(t.Phase), strconv.FormatBool(t.Overrun)).Observe(t.Used.Seconds())
	return nil
}

// RecordAudit exports the violation count per check.
func (s *PromSink) RecordAudit(findings []model.AuditFinding) error {
	for _, f := range findings {
		s.audit.WithLabelValues(f.Check).Set(float64(f.Violations))
	}
	return nil
}
