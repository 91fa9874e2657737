// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Ingestion metrics
	GameLogsIngested prometheus.Counter

	// Projection metrics
	PlayersProjected prometheus.Counter
	PlayersSkipped   prometheus.Counter
	GameDayAdjusted  prometheus.Counter
	LookupResolution *prometheus.CounterVec

	// Auction metrics
	AuctionNudgeSteps prometheus.Gauge
	AuctionPoolSize   prometheus.Gauge

	// Pipeline metrics
	PipelineRunsTotal *prometheus.CounterVec
	PipelineDuration  *prometheus.HistogramVec
	ReportsGenerated  prometheus.Counter

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec

	// Health metrics
	LastSuccessfulPipeline prometheus.Gauge
}

// NewMetrics creates a Metrics instance registered on reg.
// A nil reg uses the default registerer.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "nba_projection_lab"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		GameLogsIngested: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "game_logs_ingested_total",
			Help:      "Total number of game log rows stored",
		}),

		PlayersProjected: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "projection",
			Name:      "players_projected_total",
			Help:      "Total number of players with a season projection",
		}),
		PlayersSkipped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "projection",
			Name:      "players_skipped_total",
			Help:      "Total number of players skipped for lack of a qualifying season",
		}),
		GameDayAdjusted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "projection",
			Name:      "gameday_projections_total",
			Help:      "Total number of single-game projections computed",
		}),
		LookupResolution: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lookup",
			Name:      "resolutions_total",
			Help:      "Static table lookups by table and outcome (exact, fallback, miss)",
		}, []string{"table", "outcome"}),

		AuctionNudgeSteps: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "auction",
			Name:      "nudge_steps",
			Help:      "Dollar nudges needed to hit the budget in the last run",
		}),
		AuctionPoolSize: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "auction",
			Name:      "pool_size",
			Help:      "Draftable pool size in the last run",
		}),

		PipelineRunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total number of pipeline runs by status",
		}, []string{"phase", "status"}),
		PipelineDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "duration_seconds",
			Help:      "Pipeline phase duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		}, []string{"phase"}),
		ReportsGenerated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "reports_generated_total",
			Help:      "Total number of report files written",
		}),

		DBQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),

		LastSuccessfulPipeline: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_pipeline_timestamp",
			Help:      "Unix timestamp of last successful pipeline run",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("", nil)

// RecordGameLogsIngested adds n stored game log rows.
func RecordGameLogsIngested(n int) {
	DefaultMetrics.GameLogsIngested.Add(float64(n))
}

// RecordProjectionOutcome counts projected and skipped players for a run.
func RecordProjectionOutcome(projected, skipped int) {
	DefaultMetrics.PlayersProjected.Add(float64(projected))
	DefaultMetrics.PlayersSkipped.Add(float64(skipped))
}

// RecordGameDay counts single-game projections.
func RecordGameDay(n int) {
	DefaultMetrics.GameDayAdjusted.Add(float64(n))
}

// RecordLookup adds lookup outcomes for one table.
func RecordLookup(table string, exact, fallback, miss int) {
	DefaultMetrics.LookupResolution.WithLabelValues(table, "exact").Add(float64(exact))
	DefaultMetrics.LookupResolution.WithLabelValues(table, "fallback").Add(float64(fallback))
	DefaultMetrics.LookupResolution.WithLabelValues(table, "miss").Add(float64(miss))
}

// RecordAuction records pool size and nudge steps of the last pricing pass.
func RecordAuction(poolSize, nudgeSteps int) {
	DefaultMetrics.AuctionPoolSize.Set(float64(poolSize))
	DefaultMetrics.AuctionNudgeSteps.Set(float64(nudgeSteps))
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}

// RecordPipelineRun records a pipeline phase.
func RecordPipelineRun(phase, status string, durationSeconds float64) {
	DefaultMetrics.PipelineRunsTotal.WithLabelValues(phase, status).Inc()
	DefaultMetrics.PipelineDuration.WithLabelValues(phase).Observe(durationSeconds)
}

// RecordPipelineSuccess stamps the last successful run.
func RecordPipelineSuccess(unixSeconds int64) {
	DefaultMetrics.LastSuccessfulPipeline.Set(float64(unixSeconds))
}

// RecordReports adds n written report files.
func RecordReports(n int) {
	DefaultMetrics.ReportsGenerated.Add(float64(n))
}
