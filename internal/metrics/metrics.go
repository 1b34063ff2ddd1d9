// Package metrics provides Prometheus metrics for the NatureHelp service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecordsTotal tracks contribution and donation writes by kind and status
	RecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "naturehelp",
			Subsystem: "records",
			Name:      "writes_total",
			Help:      "Total number of record writes by kind and status",
		},
		[]string{"kind", "status"},
	)

	// WriteDuration tracks the duration of the record write transaction
	WriteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "naturehelp",
			Subsystem: "records",
			Name:      "write_duration_seconds",
			Help:      "Duration of record write transactions in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"kind"},
	)

	// TreesPlantedTotal counts trees planted since process start
	TreesPlantedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "naturehelp",
			Subsystem: "impact",
			Name:      "trees_planted_total",
			Help:      "Trees planted since process start",
		},
	)

	// DonatedAmountTotal sums donated dollars since process start
	DonatedAmountTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "naturehelp",
			Subsystem: "impact",
			Name:      "donated_dollars_total",
			Help:      "Dollars donated since process start",
		},
	)

	// CacheLookupsTotal tracks cache hits and misses by cache name
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "naturehelp",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Cache lookups by cache and result",
		},
		[]string{"cache", "result"},
	)

	// EventsPublishedTotal tracks published activity events by status
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "naturehelp",
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Activity events published by type and status",
		},
		[]string{"event_type", "status"},
	)
)

const (
	KindContribution = "contribution"
	KindDonation     = "donation"
)

// RecordWrite records the outcome of a contribution or donation write.
func RecordWrite(kind string, err error, durationSeconds float64) {
	status := "success"
	if err != nil {
		status = "error"
	}
	RecordsTotal.WithLabelValues(kind, status).Inc()
	WriteDuration.WithLabelValues(kind).Observe(durationSeconds)
}

// RecordTreePlanted counts one planted tree.
func RecordTreePlanted() {
	TreesPlantedTotal.Inc()
}

// RecordDonation adds a donated amount.
func RecordDonation(amount float64) {
	DonatedAmountTotal.Add(amount)
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(cache, result).Inc()
}

// RecordEventPublish records the outcome of an event publish.
func RecordEventPublish(eventType string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	EventsPublishedTotal.WithLabelValues(eventType, status).Inc()
}
