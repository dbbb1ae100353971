package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var callsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "vault_calls_total",
		Help: "Number of delivered calls by message path and outcome.",
	},
	[]string{
		"path",
		"result",
	},
)

var callEvents = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "vault_call_events",
		Help:    "Number of events emitted by a committed call.",
		Buckets: []float64{0, 1, 2, 4, 8, 16},
	},
)

func callDelivered(path string, events int) {
	callsTotal.With(prometheus.Labels{"path": path, "result": "ok"}).Inc()
	callEvents.Observe(float64(events))
}

func callFailed(path string) {
	callsTotal.With(prometheus.Labels{"path": path, "result": "error"}).Inc()
}
