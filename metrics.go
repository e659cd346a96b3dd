package msgformat

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// collector exports the engine counters as Prometheus metrics. Values are
// read at scrape time from CacheStats and SnapshotStats.
type collector struct {
	engine *Engine

	cacheEntries        *prometheus.Desc
	cacheCapacity       *prometheus.Desc
	cacheHits           *prometheus.Desc
	cacheMisses         *prometheus.Desc
	cacheEvictions      *prometheus.Desc
	parseErrors         *prometheus.Desc
	renderErrors        *prometheus.Desc
	missingTranslations *prometheus.Desc
	languageFallbacks   *prometheus.Desc
	droppedEvents       *prometheus.Desc
}

// NewCollector returns a prometheus.Collector for e. namespace prefixes every
// metric name and may be empty.
func NewCollector(e *Engine, namespace string) prometheus.Collector {
	desc := func(name, help string, labels ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "msgformat", name), help, labels, nil)
	}
	return &collector{
		engine:              e,
		cacheEntries:        desc("cache_entries", "Parsed patterns currently cached"),
		cacheCapacity:       desc("cache_capacity", "Maximum number of cached patterns"),
		cacheHits:           desc("cache_hits_total", "Pattern cache hits"),
		cacheMisses:         desc("cache_misses_total", "Pattern cache misses"),
		cacheEvictions:      desc("cache_evictions_total", "Patterns evicted from the cache"),
		parseErrors:         desc("parse_errors_total", "Patterns that failed to parse"),
		renderErrors:        desc("render_errors_total", "Render failures by kind", "kind"),
		missingTranslations: desc("missing_translations_total", "Translation keys missing in every candidate locale"),
		languageFallbacks:   desc("language_fallbacks_total", "Translations served from a fallback locale"),
		droppedEvents:       desc("dropped_events_total", "Observer events dropped because the queue was full"),
	}
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.cacheEntries
	ch <- c.cacheCapacity
	ch <- c.cacheHits
	ch <- c.cacheMisses
	ch <- c.cacheEvictions
	ch <- c.parseErrors
	ch <- c.renderErrors
	ch <- c.missingTranslations
	ch <- c.languageFallbacks
	ch <- c.droppedEvents
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	cache := c.engine.CacheStats()
	ch <- prometheus.MustNewConstMetric(c.cacheEntries, prometheus.GaugeValue, float64(cache.Entries))
	ch <- prometheus.MustNewConstMetric(c.cacheCapacity, prometheus.GaugeValue, float64(cache.Capacity))
	ch <- prometheus.MustNewConstMetric(c.cacheHits, prometheus.CounterValue, float64(cache.Hits))
	ch <- prometheus.MustNewConstMetric(c.cacheMisses, prometheus.CounterValue, float64(cache.Misses))
	ch <- prometheus.MustNewConstMetric(c.cacheEvictions, prometheus.CounterValue, float64(cache.Evictions))

	stats := c.engine.SnapshotStats()
	ch <- prometheus.MustNewConstMetric(c.parseErrors, prometheus.CounterValue, sum(stats.ParseErrors))
	for kind, count := range renderErrorsByKind(stats.RenderErrors) {
		ch <- prometheus.MustNewConstMetric(c.renderErrors, prometheus.CounterValue, float64(count), kind)
	}
	ch <- prometheus.MustNewConstMetric(c.missingTranslations, prometheus.CounterValue, sum(stats.MissingTranslations))
	ch <- prometheus.MustNewConstMetric(c.languageFallbacks, prometheus.CounterValue, sum(stats.LanguageFallbacks))
	ch <- prometheus.MustNewConstMetric(c.droppedEvents, prometheus.CounterValue, sum(stats.DroppedEvents))
}

func sum(counts map[string]int) float64 {
	total := 0
	for _, v := range counts {
		total += v
	}
	return float64(total)
}

// renderErrorsByKind folds "locale:kind" stat keys into per-kind totals.
// Keys without a kind (the overflow bucket) count as "other".
func renderErrorsByKind(counts map[string]int) map[string]int {
	out := map[string]int{}
	for key, v := range counts {
		kind := "other"
		if idx := strings.LastIndex(key, ":"); idx >= 0 {
			kind = key[idx+1:]
		}
		out[kind] += v
	}
	return out
}
