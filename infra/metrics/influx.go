package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/DRNaser/shift-optimizer-sub007/core/budget"
	coremetrics "github.com/DRNaser/shift-optimizer-sub007/core/metrics"
	"github.com/DRNaser/shift-optimizer-sub007/core/model"
	"github.com/DRNaser/shift-optimizer-sub007/infra/logger"
)

// InfluxSink writes solve outcomes to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink for the given InfluxDB endpoint.
func NewInfluxSink(cfg coremetrics.Config) *InfluxSink {
	base := strings.TrimSuffix(cfg.InfluxURL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink when the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordSolve writes one solve summary point.
func (s *InfluxSink) RecordSolve(stats coremetrics.SolveStats) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("roster_solve").
		AddTag("passed", boolStr(stats.Passed)).
		AddTag("signature", stats.Signature).
		AddField("headcount", stats.Headcount).
		AddField("peak_fleet", stats.PeakFleet).
		AddField("pool_size", stats.PoolSize).
		AddField("probes", stats.Probes).
		AddField("repairs", stats.Repairs).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordPhase writes one phase timing point.
func (s *InfluxSink) RecordPhase(t budget.PhaseTiming) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("roster_phase").
		AddTag("phase", string(t.Phase)).
		AddTag("overrun", boolStr(t.Overrun)).
		AddField("used_seconds", t.Used.Seconds()).
		AddField("allocated_seconds", t.Allocated.Seconds()).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordAudit writes one point per audit finding.
func (s *InfluxSink) RecordAudit(findings []model.AuditFinding) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	now := time.Now()
	for _, f := range findings {
		p := write.NewPointWithMeasurement("roster_audit").
			AddTag("check", f.Check).
			AddTag("status", string(f.Status)).
			AddField("violations", f.Violations).
			SetTime(now)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
