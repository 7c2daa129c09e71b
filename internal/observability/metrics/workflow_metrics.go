package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"

	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

type Config struct {
	ServiceName string
	Environment string
}

// WorkflowMetrics records coordinator outcomes. A nil receiver is a no-op.
type WorkflowMetrics struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
	cache    *prometheus.CounterVec
}

func NewWorkflowMetrics(registerer prometheus.Registerer, cfg Config) *WorkflowMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	service := strings.TrimSpace(cfg.ServiceName)
	if service == "" {
		service = "relief-fund"
	}
	env := strings.TrimSpace(cfg.Environment)
	if env == "" {
		env = "unknown"
	}
	constLabels := prometheus.Labels{"service": service, "env": env}

	m := &WorkflowMetrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "relief_workflow_total",
			Help:        "Coordinator workflow runs by outcome.",
			ConstLabels: constLabels,
		}, []string{"workflow", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "relief_workflow_duration_seconds",
			Help:        "Coordinator workflow latency including commit.",
			Buckets:     []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			ConstLabels: constLabels,
		}, []string{"workflow"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "relief_workflow_step_failures_total",
			Help:        "Failed workflow steps by error kind.",
			ConstLabels: constLabels,
		}, []string{"workflow", "step", "kind"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "relief_read_cache_total",
			Help:        "Read cache lookups by result.",
			ConstLabels: constLabels,
		}, []string{"entity", "result"}),
	}
	registerer.MustRegister(m.runs, m.duration, m.failures, m.cache)
	return m
}

// Observe records one finished workflow. outcome is OutcomeSuccess or an
// error kind.
func (m *WorkflowMetrics) Observe(workflow, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(workflow, outcome).Inc()
	m.duration.WithLabelValues(workflow).Observe(elapsed.Seconds())
}

func (m *WorkflowMetrics) StepFailed(workflow, step, kind string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(workflow, step, kind).Inc()
}

func (m *WorkflowMetrics) CacheLookup(entity, result string) {
	if m == nil {
		return
	}
	m.cache.WithLabelValues(entity, result).Inc()
}
