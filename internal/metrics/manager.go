package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests          *prometheus.CounterVec
	CounterHandlePanic       prometheus.Counter
	CounterGoalsUpserted     *prometheus.CounterVec
	CounterSessionsRecorded  *prometheus.CounterVec
	CounterIndexingFailures  *prometheus.CounterVec
	CounterEmbeddingRetries  prometheus.Counter
	CounterAssistantQueries  *prometheus.CounterVec
	CounterCoachDocsUploaded prometheus.Counter

	// gauges
	GaugeRequests prometheus.Gauge

	// histograms
	HistRequestDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("tracker", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("tracker", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterHandlePanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})
	counterGoalsUpserted := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "goals_upserted",
		Help:      "Goal saves by discipline and outcome (created or updated)",
	}, []string{"discipline", "outcome"})
	counterSessionsRecorded := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "sessions_recorded",
		Help:      "The total number of recorded sessions",
	}, []string{"discipline"})
	counterIndexingFailures := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "indexing_failures",
		Help:      "Items that could not be embedded or written to the vector index",
	}, []string{"kind"})
	counterEmbeddingRetries := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "embedding_retries",
		Help:      "Embedding calls retried after a rate limit",
	})
	counterAssistantQueries := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "assistant_queries",
		Help:      "Assistant questions by outcome",
	}, []string{"outcome"})
	counterCoachDocsUploaded := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "coach_docs_uploaded",
		Help:      "The total number of uploaded coaching documents",
	})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})

	histReqDuration := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			Name:      "request_duration_seconds",
			Help:      "Total duration of requests in seconds",
		},
		[]string{"route"},
	)

	return &Manager{
		CounterRequests:          counterRequests,
		CounterHandlePanic:       counterHandlePanic,
		CounterGoalsUpserted:     counterGoalsUpserted,
		CounterSessionsRecorded:  counterSessionsRecorded,
		CounterIndexingFailures:  counterIndexingFailures,
		CounterEmbeddingRetries:  counterEmbeddingRetries,
		CounterAssistantQueries:  counterAssistantQueries,
		CounterCoachDocsUploaded: counterCoachDocsUploaded,
		GaugeRequests:            gaugeRequests,
		HistRequestDuration:      histReqDuration,
	}
}
