package metrics

import (
	"time"

	"store-ops/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder collects import metrics on its own registry.
type Recorder struct {
	registry *prometheus.Registry
	rows     *prometheus.CounterVec
	batches  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRecorder creates a recorder with Go runtime and process collectors attached.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storeops",
			Subsystem: "import",
			Name:      "rows_total",
			Help:      "Imported spreadsheet rows by entity and outcome.",
		}, []string{"entity", "outcome"}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storeops",
			Subsystem: "import",
			Name:      "batches_total",
			Help:      "Import batches by entity and status.",
		}, []string{"entity", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "storeops",
			Subsystem: "import",
			Name:      "duration_seconds",
			Help:      "Wall time of import batches.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"entity"}),
	}

	r.registry.MustRegister(
		r.rows,
		r.batches,
		r.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveBatch implements reconcile.Observer.
func (r *Recorder) ObserveBatch(entity, status string, result *reconcile.BatchResult, elapsed time.Duration) {
	r.batches.WithLabelValues(entity, status).Inc()
	r.duration.WithLabelValues(entity).Observe(elapsed.Seconds())
	if result == nil {
		return
	}
	r.rows.WithLabelValues(entity, string(reconcile.OutcomeInserted)).Add(float64(result.InsertedCount))
	r.rows.WithLabelValues(entity, string(reconcile.OutcomeUpdated)).Add(float64(result.UpdatedCount))
	r.rows.WithLabelValues(entity, string(reconcile.OutcomeRejected)).Add(float64(result.RejectedCount))
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))
}
