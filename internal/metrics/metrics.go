package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TurnsTotal counts completed turns by resolved intent and input source.
	TurnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatbot_turns_total",
		Help: "Completed chat turns by intent and source.",
	}, []string{"intent", "source"})

	// ProductLookupsTotal counts product lookups by outcome (hit, miss, error).
	ProductLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatbot_product_lookups_total",
		Help: "Product lookups by outcome.",
	}, []string{"outcome"})

	HistoryWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatbot_history_write_failures_total",
		Help: "Chat turns that could not be persisted.",
	})

	// VoiceSessionsTotal counts voice sessions by outcome (ok, busy, error).
	VoiceSessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatbot_voice_sessions_total",
		Help: "Voice transcription sessions by outcome.",
	}, []string{"outcome"})

	RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatbot_rate_limited_total",
		Help: "Requests rejected by the rate limiter.",
	})

	// RateLimiterErrors counts requests let through because Redis failed.
	RateLimiterErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatbot_rate_limiter_errors_total",
		Help: "Rate limiter checks that failed and allowed the request.",
	})
)
