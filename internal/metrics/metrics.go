// Package metrics exposes Prometheus collectors for the record store. The
// collectors are fed by store change notifications and can be written to a
// node_exporter textfile after each CLI run.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/petar-djukic/equipments/internal/store"
)

// Metric names.
const (
	namespace = "equipments"

	MetricMutationsTotal           = "mutations_total"
	MetricPersistenceFailuresTotal = "persistence_failures_total"
	MetricRecords                  = "records"
	MetricInventoryValue           = "inventory_value_minor_units"
)

// Label names.
const (
	LabelCollection = "collection"
	LabelOp         = "op"
)

// Collector groups the store metrics behind its own registry so tests and
// multiple stores never share global state.
type Collector struct {
	registry            *prometheus.Registry
	mutations           *prometheus.CounterVec
	persistenceFailures prometheus.Counter
	cancel              func()
}

// New registers the collectors for s and subscribes to its events. Call
// Close to unsubscribe.
func New(s *store.Store) (*Collector, error) {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      MetricMutationsTotal,
				Help:      "Committed store mutations by collection and operation.",
			},
			[]string{LabelCollection, LabelOp},
		),
		persistenceFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      MetricPersistenceFailuresTotal,
			Help:      "Mutations applied in memory that could not be written to disk.",
		}),
	}

	records := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      MetricRecords,
			Help:      "Records currently held per collection.",
		},
		[]string{LabelCollection},
	)
	value := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      MetricInventoryValue,
			Help:      "Sum of equipment prices in minor currency units.",
		},
		func() float64 { return float64(s.Statistics().TotalValue) },
	)

	var errs []error
	for _, col := range []prometheus.Collector{c.mutations, c.persistenceFailures, records, value} {
		errs = append(errs, c.registry.Register(col))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	setRecords := func() {
		st := s.Statistics()
		records.WithLabelValues(string(store.CollectionPlayTypes)).Set(float64(st.PlayTypeCount))
		records.WithLabelValues(string(store.CollectionCategories)).Set(float64(st.CategoryCount))
		records.WithLabelValues(string(store.CollectionEquipment)).Set(float64(st.EquipmentCount))
	}
	setRecords()

	c.cancel = s.Subscribe(func(ev store.Event) {
		c.Observe(ev)
		setRecords()
	})
	return c, nil
}

// Observe counts one store event.
func (c *Collector) Observe(ev store.Event) {
	c.mutations.WithLabelValues(string(ev.Collection), string(ev.Op)).Inc()
	if ev.Err != nil {
		c.persistenceFailures.Inc()
	}
}

// Registry returns the registry holding the store collectors.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// WriteTextfile writes the current metrics in the Prometheus text format,
// atomically replacing path.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

// Close unsubscribes from the store.
func (c *Collector) Close() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
