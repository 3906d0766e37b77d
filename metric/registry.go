package metric

import (
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/c360/streamblocks/errors"
)

// Registrar defines the interface for registering block-specific collectors
// alongside the core metrics.
type Registrar interface {
	RegisterCollector(blockName, metricName string, c prometheus.Collector) error
	Unregister(blockName, metricName string) bool
}

// Registry manages the registration and lifecycle of metrics
type Registry struct {
	prometheusRegistry *prometheus.Registry
	Metrics            *Metrics
	registered         map[string]prometheus.Collector
	mu                 sync.RWMutex
}

// NewRegistry creates a new metrics registry with the core block metrics and
// Go runtime collectors attached.
func NewRegistry() *Registry {
	r := &Registry{
		prometheusRegistry: prometheus.NewRegistry(),
		registered:         make(map[string]prometheus.Collector),
	}

	r.Metrics = NewMetrics()
	r.prometheusRegistry.MustRegister(
		r.Metrics.WorkInvocations,
		r.Metrics.WorkYields,
		r.Metrics.ElementsConsumed,
		r.Metrics.ElementsProduced,
		r.Metrics.BlocksActive,
	)

	r.prometheusRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// PrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.prometheusRegistry
}

// CoreMetrics returns the core block metrics
func (r *Registry) CoreMetrics() *Metrics {
	return r.Metrics
}

// RegisterCollector registers a collector owned by one block instance. The
// blockName/metricName pair must be unique across the registry.
func (r *Registry) RegisterCollector(blockName, metricName string, c prometheus.Collector) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := fmt.Sprintf("%s.%s", blockName, metricName)
	if _, exists := r.registered[key]; exists {
		return errors.InvalidArgumentf("Registry", "RegisterCollector",
			"metric %s already registered for block %s", metricName, blockName)
	}

	if err := r.prometheusRegistry.Register(c); err != nil {
		var alreadyRegErr prometheus.AlreadyRegisteredError
		if stderrors.As(err, &alreadyRegErr) {
			return errors.WrapInvalidArgument(err, "Registry", "RegisterCollector",
				fmt.Sprintf("prometheus conflict for metric %s", metricName))
		}
		return errors.Wrap(err, "Registry", "RegisterCollector",
			"failed to register collector with prometheus")
	}

	r.registered[key] = c
	return nil
}

// Unregister removes a block collector from the registry
func (r *Registry) Unregister(blockName, metricName string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := fmt.Sprintf("%s.%s", blockName, metricName)
	c, exists := r.registered[key]
	if !exists {
		return false
	}

	ok := r.prometheusRegistry.Unregister(c)
	if ok {
		delete(r.registered, key)
	}
	return ok
}
