// Package metrics defines and registers all custom Prometheus metrics for the
// comicreader gateway. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "comicreader"

// ProxyRequestsTotal counts calls forwarded to the remote backend.
// Labels:
//   - route: the gateway route (e.g. "/api/manga")
//   - result: "ok", "error", or "fallback" when sample data was served
var ProxyRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proxy_requests_total",
		Help:      "Total number of requests proxied to the backend, by route and result.",
	},
	[]string{"route", "result"},
)

// CacheTotal counts Redis response-cache decisions on proxied GETs.
// Label:
//   - result: "hit" or "miss"
var CacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_total",
		Help:      "Total number of response cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// SessionLoginsTotal counts gateway cookie-session logins.
// Label:
//   - result: "success" or "failure"
var SessionLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_logins_total",
		Help:      "Total number of gateway login attempts, by result.",
	},
	[]string{"result"},
)

// ReadingEventsTotal counts reading-history events accepted for processing.
var ReadingEventsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reading_events_total",
		Help:      "Total number of reading-history events enqueued.",
	},
)

// BackendRequestDuration measures one backend round trip through the client.
// Label:
//   - route: the gateway route that triggered the call
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of proxied backend calls from dispatch to decode.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route"},
)
