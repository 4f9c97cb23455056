// Package metrics defines the Prometheus metrics for the LFP backend client.
// It is the single source of truth for metric names, labels, and help strings;
// registration happens once at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lfp_client"

// RequestsTotal counts completed backend calls.
// Labels:
//   - method: HTTP method of the call
//   - status: numeric HTTP status of the response
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of backend API calls that received a response.",
	},
	[]string{"method", "status"},
)

// RequestErrorsTotal counts failed backend calls.
// Label:
//   - kind: "network" (no response obtained) or "api" (non-2xx response)
var RequestErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "request_errors_total",
		Help:      "Total number of failed backend API calls, by failure kind.",
	},
	[]string{"kind"},
)

// RequestDuration measures the round-trip time of backend calls.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of backend API calls from dispatch to body read.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)
