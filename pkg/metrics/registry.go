package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the application
type Registry struct {
	// Pipeline Metrics
	LoadsTotal     *prometheus.CounterVec
	LoadDuration   *prometheus.HistogramVec
	LoadedEntities prometheus.Histogram
	BuildsTotal    *prometheus.CounterVec
	BuildDuration  prometheus.Histogram
	GraphNodes     prometheus.Histogram
	RendersTotal   *prometheus.CounterVec
	RenderDuration *prometheus.HistogramVec
	InFlightBuilds prometheus.Gauge

	// Link Metrics
	LinkExtractionsTotal  prometheus.Counter
	LinkExtractDuration   prometheus.Histogram
	LinkCorrelationsTotal prometheus.Counter
	LinkConnectionsTotal  prometheus.Counter
	LinkDroppedTotal      prometheus.Counter
	LinkDuplicatesTotal   prometheus.Counter

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
	CacheSetsTotal   *prometheus.CounterVec
	CacheSetBytes    *prometheus.HistogramVec

	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide registry, creating it on first use.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a registry with every kaoto metric registered on a
// fresh prometheus.Registry. Go runtime and process collectors are included.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r.initPipelineMetrics()
	r.initLinkMetrics()
	r.initCacheMetrics()
	r.initHTTPMetrics()

	return r
}

// Gatherer exposes the underlying registry for custom exporters.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Registry) initPipelineMetrics() {
	f := promauto.With(r.registry)

	r.LoadsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kaoto_loads_total",
			Help: "Total number of definition, document and mapping loads",
		},
		[]string{"status"},
	)

	r.LoadDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kaoto_load_duration_seconds",
			Help:    "Time spent reading and parsing input files",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)

	r.LoadedEntities = f.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kaoto_loaded_entities",
			Help:    "Number of top-level entities per loaded file",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
		},
	)

	r.BuildsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kaoto_graph_builds_total",
			Help: "Total number of visualization graph builds",
		},
		[]string{"status"},
	)

	r.BuildDuration = f.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kaoto_graph_build_duration_seconds",
			Help:    "Time spent converting a definition into a graph",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
	)

	r.GraphNodes = f.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kaoto_graph_nodes",
			Help:    "Number of nodes in built graphs",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	r.RendersTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kaoto_renders_total",
			Help: "Total number of render passes by format",
		},
		[]string{"format", "status"},
	)

	r.RenderDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kaoto_render_duration_seconds",
			Help:    "Time spent rendering a graph",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"},
	)

	r.InFlightBuilds = f.NewGauge(
		prometheus.GaugeOpts{
			Name: "kaoto_graph_builds_in_flight",
			Help: "Current number of graph builds in progress",
		},
	)
}

func (r *Registry) initLinkMetrics() {
	f := promauto.With(r.registry)

	r.LinkExtractionsTotal = f.NewCounter(prometheus.CounterOpts{
		Name: "kaoto_link_extractions_total",
		Help: "Total number of link extraction passes",
	})
	r.LinkExtractDuration = f.NewHistogram(prometheus.HistogramOpts{
		Name:    "kaoto_link_extract_duration_seconds",
		Help:    "Time spent resolving correlations into connections",
		Buckets: []float64{.00001, .0001, .001, .01, .1},
	})
	r.LinkCorrelationsTotal = f.NewCounter(prometheus.CounterOpts{
		Name: "kaoto_link_correlations_total",
		Help: "Correlations handed to link extraction",
	})
	r.LinkConnectionsTotal = f.NewCounter(prometheus.CounterOpts{
		Name: "kaoto_link_connections_total",
		Help: "Connections produced by link extraction",
	})
	r.LinkDroppedTotal = f.NewCounter(prometheus.CounterOpts{
		Name: "kaoto_link_dropped_total",
		Help: "Correlations dropped because an endpoint had no visible anchor",
	})
	r.LinkDuplicatesTotal = f.NewCounter(prometheus.CounterOpts{
		Name: "kaoto_link_duplicates_total",
		Help: "Correlations skipped because the same pair was already seen",
	})
}

func (r *Registry) initCacheMetrics() {
	f := promauto.With(r.registry)

	r.CacheHitsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kaoto_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"key_type"},
	)
	r.CacheMissesTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kaoto_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"key_type"},
	)
	r.CacheSetsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kaoto_cache_sets_total",
			Help: "Total number of cache writes",
		},
		[]string{"key_type"},
	)
	r.CacheSetBytes = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kaoto_cache_set_bytes",
			Help:    "Size of cache entries written",
			Buckets: []float64{256, 1024, 4096, 16384, 65536, 262144, 1048576},
		},
		[]string{"key_type"},
	)
}

func (r *Registry) initHTTPMetrics() {
	f := promauto.With(r.registry)

	r.HTTPRequestsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kaoto_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	r.HTTPRequestDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kaoto_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	r.HTTPRequestsInFlight = f.NewGauge(
		prometheus.GaugeOpts{
			Name: "kaoto_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)
}
