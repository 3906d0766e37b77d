package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the block-level instrumentation shared by every runner:
// work invocation counts, element throughput, and yields (invocations that
// made no progress).
type Metrics struct {
	WorkInvocations  *prometheus.CounterVec
	WorkYields       *prometheus.CounterVec
	ElementsConsumed *prometheus.CounterVec
	ElementsProduced *prometheus.CounterVec
	BlocksActive     prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all block metrics
func NewMetrics() *Metrics {
	return &Metrics{
		WorkInvocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamblocks",
				Subsystem: "work",
				Name:      "invocations_total",
				Help:      "Total number of work invocations per block",
			},
			[]string{"block"},
		),

		WorkYields: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamblocks",
				Subsystem: "work",
				Name:      "yields_total",
				Help:      "Total number of work invocations that made no progress",
			},
			[]string{"block"},
		),

		ElementsConsumed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamblocks",
				Subsystem: "stream",
				Name:      "elements_consumed_total",
				Help:      "Total number of elements consumed per block",
			},
			[]string{"block"},
		),

		ElementsProduced: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamblocks",
				Subsystem: "stream",
				Name:      "elements_produced_total",
				Help:      "Total number of elements produced per block",
			},
			[]string{"block"},
		),

		BlocksActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "streamblocks",
				Subsystem: "topology",
				Name:      "blocks_active",
				Help:      "Number of blocks attached to running topologies",
			},
		),
	}
}

// RecordWork records one work invocation and its element movement. An
// invocation moving nothing counts as a yield.
func (c *Metrics) RecordWork(blockName string, consumed, produced uint64) {
	c.WorkInvocations.WithLabelValues(blockName).Inc()
	if consumed == 0 && produced == 0 {
		c.WorkYields.WithLabelValues(blockName).Inc()
		return
	}
	c.ElementsConsumed.WithLabelValues(blockName).Add(float64(consumed))
	c.ElementsProduced.WithLabelValues(blockName).Add(float64(produced))
}

// RecordBlocksActive updates the attached block gauge
func (c *Metrics) RecordBlocksActive(n int) {
	c.BlocksActive.Set(float64(n))
}
