package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics groups the storefront collectors. A nil *Metrics is valid and
// records nothing, so services can be built without a registry in tests.
type Metrics struct {
	AssistantRequests *prometheus.CounterVec
	OrdersPlaced      prometheus.Counter
	CartMutations     *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AssistantRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "assistant_requests_total",
			Help:      "Text generation calls by operation and outcome.",
		}, []string{"op", "outcome"}),
		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "orders_placed_total",
			Help:      "Orders created at checkout.",
		}),
		CartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "cart_mutations_total",
			Help:      "Cart changes by operation.",
		}, []string{"op"}),
	}
	reg.MustRegister(m.AssistantRequests, m.OrdersPlaced, m.CartMutations)
	return m
}

// NewRegistry returns a registry with the process and Go runtime collectors
// plus the storefront metrics.
func NewRegistry() (*prometheus.Registry, *Metrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg, New(reg)
}

func (m *Metrics) Assistant(op, outcome string) {
	if m == nil {
		return
	}
	m.AssistantRequests.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) OrderPlaced() {
	if m == nil {
		return
	}
	m.OrdersPlaced.Inc()
}

func (m *Metrics) Cart(op string) {
	if m == nil {
		return
	}
	m.CartMutations.WithLabelValues(op).Inc()
}
