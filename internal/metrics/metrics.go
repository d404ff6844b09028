package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	providerFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_fetch_total",
			Help: "Provider catalog fetches by outcome",
		},
		[]string{"provider", "status"},
	)

	providerFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_fetch_duration_seconds",
			Help:    "Provider catalog fetch latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"provider"},
	)

	registryWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reward_registry_writes_total",
			Help: "Enablement registry rows written or removed",
		},
		[]string{"action"},
	)

	malformedCpidTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "malformed_cpid_total",
			Help: "CPIDs with fewer than four segments passed through unmodified",
		},
	)

	groupedRewards = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "grouped_rewards",
			Help: "Group count of the most recent grouped-rewards response",
		},
	)
)

// ObserveProviderFetch records one provider catalog fetch.
func ObserveProviderFetch(provider string, ok bool, d time.Duration) {
	status := "ok"
	if !ok {
		status = "error"
	}
	providerFetchTotal.WithLabelValues(provider, status).Inc()
	providerFetchDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// RecordRegistryWrite records registry rows affected by an enable/disable.
func RecordRegistryWrite(action string, rows int64) {
	registryWritesTotal.WithLabelValues(action).Add(float64(rows))
}

// RecordMalformedCpid counts a pass-through of a malformed CPID.
func RecordMalformedCpid() {
	malformedCpidTotal.Inc()
}

// SetGroupedRewards tracks the size of the latest grouped response.
func SetGroupedRewards(n int) {
	groupedRewards.Set(float64(n))
}
