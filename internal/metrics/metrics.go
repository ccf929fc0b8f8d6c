package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	GRPCRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grpc_requests_total",
			Help: "Total number of gRPC requests.",
		},
		[]string{"method", "code"},
	)

	GRPCRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "grpc_request_duration_seconds",
			Help:    "Duration of gRPC requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	LikesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "likes_total",
			Help: "Like submissions by outcome.",
		},
		[]string{"outcome"},
	)

	MatchesCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "matches_created_total",
			Help: "Match rows inserted.",
		},
	)

	MatchConflictsRecoveredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "match_conflicts_recovered_total",
			Help: "Match inserts that lost a race and recovered the existing match.",
		},
	)

	PassesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "passes_total",
			Help: "Pass decisions recorded.",
		},
	)

	MessagesSentTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "messages_sent_total",
			Help: "Chat messages stored.",
		},
	)

	MessagesReadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "messages_read_total",
			Help: "Chat messages flipped to read.",
		},
	)

	ActiveSubscriptions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_active_subscriptions",
			Help: "Open conversation subscriptions.",
		},
	)
)

var registerOnce sync.Once

// MustRegister registers every collector with the default registry. Safe to call more than once.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			GRPCRequestsTotal,
			GRPCRequestDurationSeconds,
			LikesTotal,
			MatchesCreatedTotal,
			MatchConflictsRecoveredTotal,
			PassesTotal,
			MessagesSentTotal,
			MessagesReadTotal,
			ActiveSubscriptions,
		)
	})
}
