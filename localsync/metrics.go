package localsync

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/spacemeshos/go-bloomsync/metrics"
)

const (
	subsystem   = "localsync"
	resultLabel = "result"
	stageLabel  = "stage"
)

var (
	syncedOps = metrics.NewCounter(
		"local_synced_ops",
		subsystem,
		"total ops delivered between local agents",
		[]string{}).WithLabelValues()

	dataLookups = metrics.NewCounter(
		"data_lookups",
		subsystem,
		"total record data lookups during local sync",
		[]string{resultLabel})
	dataHits    = dataLookups.WithLabelValues("hit")
	dataFetches = dataLookups.WithLabelValues("fetch")

	collectFailures = metrics.NewCounter(
		"collect_failures",
		subsystem,
		"total tolerated failures while collecting local knowledge",
		[]string{stageLabel})
	opsFailures    = collectFailures.WithLabelValues("ops")
	agentsFailures = collectFailures.WithLabelValues("agents")

	passDuration = metrics.NewHistogramWithBuckets(
		"pass_duration_seconds",
		subsystem,
		"duration of local sync passes",
		[]string{resultLabel},
		prometheus.ExponentialBuckets(0.001, 2, 16))
	passOK   = passDuration.WithLabelValues("ok")
	passFail = passDuration.WithLabelValues("fail")

	keySetSize = metrics.NewHistogramWithBuckets(
		"keyset_size",
		subsystem,
		"number of keys in the local bloom filter",
		[]string{},
		prometheus.ExponentialBuckets(1, 4, 12)).WithLabelValues()
)
