package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "adventuresof", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "adventuresof", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)

	// BooksGenerated counts finished books by where the story text came from (remote|fallback).
	BooksGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "adventuresof", Name: "books_generated_total", Help: "Number of books written, by story source."},
		[]string{"source"},
	)
	BookFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "adventuresof", Name: "book_failures_total", Help: "Number of failed book generations, by pipeline stage."},
		[]string{"stage"},
	)
	BookPages = prometheus.NewHistogram(
		prometheus.HistogramOpts{Namespace: "adventuresof", Name: "book_pages", Help: "Pages per generated book, cover included.", Buckets: prometheus.LinearBuckets(2, 4, 10)},
	)

	StoryRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "adventuresof", Name: "story_requests_total", Help: "Remote story generation attempts by outcome."},
		[]string{"status"},
	)
	StoryRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Namespace: "adventuresof", Name: "story_request_duration_seconds", Help: "Duration of remote story generation calls.", Buckets: prometheus.DefBuckets},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(BooksGenerated)
	reg.MustRegister(BookFailures)
	reg.MustRegister(BookPages)
	reg.MustRegister(StoryRequests)
	reg.MustRegister(StoryRequestDuration)
}
