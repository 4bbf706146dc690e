package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kubeclient",
		Name:      "operations_total",
		Help:      "Dispatched API operations by operation name and HTTP status code.",
	}, []string{"operation", "code"})

	watchEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kubeclient",
		Name:      "watch_events_total",
		Help:      "Watch events decoded from the stream, by event type.",
	}, []string{"type"})

	watchLinesSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "kubeclient",
		Name:      "watch_lines_skipped_total",
		Help:      "Watch stream lines dropped because they did not decode.",
	})
)
