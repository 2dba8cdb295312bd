package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// GameMetrics holds the Prometheus collectors for the game engine. Construct
// one per process and share it; all collectors are safe for concurrent use.
type GameMetrics struct {
	registry *prometheus.Registry

	battlesTotal    *prometheus.CounterVec
	battleRounds    prometheus.Histogram
	levelUpsTotal   prometheus.Counter
	itemsFoundTotal prometheus.Counter
}

// NewGameMetrics creates and registers the game collectors on a private
// registry, alongside the standard Go runtime and process collectors.
func NewGameMetrics() *GameMetrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &GameMetrics{
		registry: registry,
		battlesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arena",
			Name:      "battles_total",
			Help:      "Battles resolved, labeled by outcome.",
		}, []string{"outcome"}),
		battleRounds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "arena",
			Name:      "battle_rounds",
			Help:      "Rounds per resolved battle.",
			Buckets:   prometheus.LinearBuckets(1, 2, 10),
		}),
		levelUpsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "arena",
			Name:      "levelups_total",
			Help:      "Player level-ups.",
		}),
		itemsFoundTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "arena",
			Name:      "items_found_total",
			Help:      "Items found through searches.",
		}),
	}
	registry.MustRegister(m.battlesTotal, m.battleRounds, m.levelUpsTotal, m.itemsFoundTotal)
	return m
}

// ObserveBattle records one resolved battle.
func (m *GameMetrics) ObserveBattle(outcome string, rounds int) {
	m.battlesTotal.WithLabelValues(outcome).Inc()
	m.battleRounds.Observe(float64(rounds))
}

// ObserveLevelUp records one player level-up.
func (m *GameMetrics) ObserveLevelUp() {
	m.levelUpsTotal.Inc()
}

// ObserveItemsFound records items granted by a search.
func (m *GameMetrics) ObserveItemsFound(count int) {
	m.itemsFoundTotal.Add(float64(count))
}

// Handler returns the HTTP handler serving the /metrics exposition.
func (m *GameMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *GameMetrics) Registry() *prometheus.Registry {
	return m.registry
}
