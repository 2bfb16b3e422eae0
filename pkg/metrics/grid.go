package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "bookstore"

// GridMetrics tracks how often column layouts are computed and deferred.
type GridMetrics struct {
	layouts  *prometheus.CounterVec
	deferred prometheus.Counter
}

func NewGridMetrics(reg prometheus.Registerer) *GridMetrics {
	if reg == nil {
		return &GridMetrics{}
	}
	layouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "grid_layouts_total",
		Help:      "Column layouts computed, by width tier.",
	}, []string{"tier"})
	deferred := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "grid_layouts_deferred_total",
		Help:      "Grid reads served before any viewport width was known.",
	})
	reg.MustRegister(layouts, deferred)
	return &GridMetrics{layouts: layouts, deferred: deferred}
}

// ObserveLayout counts a computed layout for the given tier.
func (g *GridMetrics) ObserveLayout(tier string) {
	if g == nil || g.layouts == nil {
		return
	}
	g.layouts.WithLabelValues(normalizeLabel(tier)).Inc()
}

// ObserveDeferred counts a read whose layout was postponed.
func (g *GridMetrics) ObserveDeferred() {
	if g == nil || g.deferred == nil {
		return
	}
	g.deferred.Inc()
}
