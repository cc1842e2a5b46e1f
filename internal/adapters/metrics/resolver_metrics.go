package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/recipe-resolver/internal/application/production/services"
	"github.com/andrescamacho/recipe-resolver/internal/domain/production"
)

// ResolverMetricsCollector records generation, condensation and catalog metrics
type ResolverMetricsCollector struct {
	generationDuration *prometheus.HistogramVec
	combinations       *prometheus.HistogramVec
	itemsExplored      prometheus.Histogram
	cacheHitsTotal     prometheus.Counter
	truncatedTotal     *prometheus.CounterVec

	condensationNodes *prometheus.GaugeVec

	catalogItems    prometheus.Gauge
	catalogRecipes  prometheus.Gauge
	circularItems   prometheus.Gauge
	circularRecipes prometheus.Gauge
	snapshotVersion prometheus.Gauge
	reloadsTotal    *prometheus.CounterVec
}

// NewResolverMetricsCollector creates a new resolver metrics collector
func NewResolverMetricsCollector() *ResolverMetricsCollector {
	return &ResolverMetricsCollector{
		generationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "generation_duration_seconds",
				Help:      "Combination generation duration per target",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"truncated"},
		),
		combinations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "combinations_per_target",
				Help:      "Distinct combinations returned per generation",
				Buckets:   []float64{0, 1, 2, 5, 10, 50, 100, 500, 1000, 5000},
			},
			[]string{"truncated"},
		),
		itemsExplored: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "items_explored",
				Help:      "Item resolutions visited per generation",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
		cacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "memo_cache_hits_total",
				Help:      "Total sub-result cache hits across generations",
			},
		),
		truncatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "truncated_generations_total",
				Help:      "Generations cut short by a safety limit",
			},
			[]string{"reason"},
		),
		condensationNodes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "condensation_nodes",
				Help:      "Nodes in the most recently built condensation graph",
			},
			[]string{"kind"},
		),
		catalogItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "items",
			Help:      "Distinct items in the loaded catalog",
		}),
		catalogRecipes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "recipes",
			Help:      "Recipes in the loaded catalog",
		}),
		circularItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "circular_items",
			Help:      "Items belonging to a circular component",
		}),
		circularRecipes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "circular_recipes",
			Help:      "Recipes closing a cycle",
		}),
		snapshotVersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "snapshot_version",
			Help:      "Version of the active recipe snapshot",
		}),
		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "catalog",
				Name:      "reloads_total",
				Help:      "Catalog reload attempts by status",
			},
			[]string{"status"},
		),
	}
}

// Register registers all resolver metrics with the Prometheus registry
func (c *ResolverMetricsCollector) Register() error {
	return register(
		c.generationDuration,
		c.combinations,
		c.itemsExplored,
		c.cacheHitsTotal,
		c.truncatedTotal,
		c.condensationNodes,
		c.catalogItems,
		c.catalogRecipes,
		c.circularItems,
		c.circularRecipes,
		c.snapshotVersion,
		c.reloadsTotal,
	)
}

// RecordGeneration records one completed generation
func (c *ResolverMetricsCollector) RecordGeneration(result *production.GenerationResult, duration time.Duration) {
	truncated := "false"
	if result.Truncated {
		truncated = "true"
		reason := services.LimitCombinations
		if result.DepthLimited {
			reason = services.LimitDepth
		}
		c.truncatedTotal.WithLabelValues(reason).Inc()
	}

	c.generationDuration.WithLabelValues(truncated).Observe(duration.Seconds())
	c.combinations.WithLabelValues(truncated).Observe(float64(result.Count()))
	c.itemsExplored.Observe(float64(result.Explored))
	c.cacheHitsTotal.Add(float64(result.CacheHits))
}

// RecordCondensation records the shape of a condensation graph
func (c *ResolverMetricsCollector) RecordCondensation(stats production.CondensationStats) {
	c.condensationNodes.WithLabelValues("regular").Set(float64(stats.RegularNodes))
	c.condensationNodes.WithLabelValues("meta").Set(float64(stats.MetaNodes))
}

// RecordSnapshot publishes the size and cycle structure of snapshot
func (c *ResolverMetricsCollector) RecordSnapshot(snapshot *services.Snapshot) {
	c.catalogItems.Set(float64(snapshot.Index.Len()))
	c.catalogRecipes.Set(float64(snapshot.Index.RecipeCount()))
	c.circularItems.Set(float64(len(snapshot.Analysis.CircularItems)))
	c.circularRecipes.Set(float64(len(snapshot.Analysis.CircularRecipes)))
	c.snapshotVersion.Set(float64(snapshot.Version))
}

// RecordReload counts a reload attempt and, on success, publishes the new snapshot
func (c *ResolverMetricsCollector) RecordReload(snapshot *services.Snapshot, err error) {
	if err != nil {
		c.reloadsTotal.WithLabelValues("error").Inc()
		return
	}
	c.reloadsTotal.WithLabelValues("success").Inc()
	c.RecordSnapshot(snapshot)
}
