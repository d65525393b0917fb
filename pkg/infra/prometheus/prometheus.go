package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Latency buckets in milliseconds. Classification is in-process, so the
	// low end is finer than for HTTP.
	latencyBuckets = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250}

	riskBuckets = []float64{0, 5, 15, 30, 50, 75, 100}

	ClassificationsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentguard_classifications_total",
			Help: "Total number of classifications by context and resulting action",
		},
		[]string{"context", "action"},
	)

	ViolationsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentguard_violations_total",
			Help: "Rule violations by category, severity and match type",
		},
		[]string{"category", "severity", "match_type"},
	)

	ClassificationLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contentguard_classification_latency_ms",
			Help:    "Classification latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"context"},
	)

	RiskScore = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contentguard_risk_score",
			Help:    "Distribution of computed risk scores",
			Buckets: riskBuckets,
		},
		[]string{"context"},
	)

	PostsModeratedTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentguard_posts_moderated_total",
			Help: "Posts processed by the creation trigger by action",
		},
		[]string{"action"},
	)

	ReportsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentguard_reports_total",
			Help: "Moderation reports by transition (filed, resolved, dismissed)",
		},
		[]string{"transition"},
	)

	BackgroundTasksTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentguard_background_tasks_total",
			Help: "Best-effort background writes by task and result",
		},
		[]string{"task", "result"},
	)

	RuleReloadsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentguard_rule_reloads_total",
			Help: "Rule table reloads by result",
		},
		[]string{"result"},
	)

	RateLimitedTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentguard_rate_limited_total",
			Help: "Requests and chat messages rejected by the rate limiter, by scope",
		},
		[]string{"scope"},
	)

	ChatConnections = promauto.With(registerer).NewGauge(
		prometheus.GaugeOpts{
			Name: "contentguard_chat_connections",
			Help: "Number of open chat websocket connections",
		},
	)
)

type MetricsConfig struct {
	EnableLatency    bool // Classification latency histogram
	EnableRiskScore  bool // Risk score histogram
	EnableViolations bool // Per-category violation counters
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		EnableLatency:    true,
		EnableRiskScore:  true,
		EnableViolations: true,
	}
}

var Config = DefaultMetricsConfig()

func Initialize(cfg MetricsConfig) {
	Config = cfg
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}

func Registry() *prometheus.Registry {
	return registry
}
