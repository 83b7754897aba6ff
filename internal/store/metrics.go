package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	savesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "medtracker",
		Name:      "saves_total",
		Help:      "Successful remote document saves.",
	})

	saveFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "medtracker",
		Name:      "save_failures_total",
		Help:      "Remote document saves that ultimately failed.",
	})

	fetchFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "medtracker",
		Name:      "fetch_failures_total",
		Help:      "Document fetches that fell back to cached or default data.",
	})

	saveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "medtracker",
		Name:      "save_duration_seconds",
		Help:      "Latency of remote document saves.",
	})
)
