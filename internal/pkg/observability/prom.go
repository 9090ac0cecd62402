package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "foliostats"
)

var (
	StatsCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "stats", "cache_lookups_total"),
		Help: "Stats cache lookups by result",
	}, []string{"result"})
	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "upstream", "request_duration_seconds"),
		Help:    "Duration of LeetCode GraphQL requests in seconds",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	}, []string{"outcome"})
	WorkerRefreshDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "worker", "refresh_duration_seconds"),
		Help: "Duration of last cache warm-up refresh in seconds",
	}, []string{"username"})
)
