package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/Ortofta/kaoto/pkg/observability"
)

var (
	_ observability.PipelineHooks = (*Registry)(nil)
	_ observability.LinkHooks     = (*Registry)(nil)
	_ observability.CacheHooks    = (*Registry)(nil)
	_ observability.HTTPHooks     = (*Registry)(nil)
)

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// OnLoadStart is a no-op; loads are recorded on completion.
func (r *Registry) OnLoadStart(context.Context, string) {}

// OnLoadComplete records a finished load.
func (r *Registry) OnLoadComplete(_ context.Context, _ string, entities int, d time.Duration, err error) {
	s := status(err)
	r.LoadsTotal.WithLabelValues(s).Inc()
	r.LoadDuration.WithLabelValues(s).Observe(d.Seconds())
	if err == nil {
		r.LoadedEntities.Observe(float64(entities))
	}
}

// OnBuildStart marks a build as in flight.
func (r *Registry) OnBuildStart(context.Context, string) {
	r.InFlightBuilds.Inc()
}

// OnBuildComplete records a finished graph build.
func (r *Registry) OnBuildComplete(_ context.Context, _ string, nodes int, d time.Duration, err error) {
	r.InFlightBuilds.Dec()
	r.BuildsTotal.WithLabelValues(status(err)).Inc()
	r.BuildDuration.Observe(d.Seconds())
	if err == nil {
		r.GraphNodes.Observe(float64(nodes))
	}
}

// OnRenderStart is a no-op; renders are recorded on completion.
func (r *Registry) OnRenderStart(context.Context, []string) {}

// OnRenderComplete records one render pass per requested format.
func (r *Registry) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	s := status(err)
	for _, f := range formats {
		r.RendersTotal.WithLabelValues(f, s).Inc()
		r.RenderDuration.WithLabelValues(f).Observe(d.Seconds())
	}
}

// OnExtract records a link extraction pass.
func (r *Registry) OnExtract(_ context.Context, correlations, connections, dropped, duplicates int, d time.Duration) {
	r.LinkExtractionsTotal.Inc()
	r.LinkExtractDuration.Observe(d.Seconds())
	r.LinkCorrelationsTotal.Add(float64(correlations))
	r.LinkConnectionsTotal.Add(float64(connections))
	r.LinkDroppedTotal.Add(float64(dropped))
	r.LinkDuplicatesTotal.Add(float64(duplicates))
}

// OnCacheHit records a cache hit.
func (r *Registry) OnCacheHit(_ context.Context, keyType string) {
	r.CacheHitsTotal.WithLabelValues(keyType).Inc()
}

// OnCacheMiss records a cache miss.
func (r *Registry) OnCacheMiss(_ context.Context, keyType string) {
	r.CacheMissesTotal.WithLabelValues(keyType).Inc()
}

// OnCacheSet records a cache write and its size.
func (r *Registry) OnCacheSet(_ context.Context, keyType string, size int) {
	r.CacheSetsTotal.WithLabelValues(keyType).Inc()
	r.CacheSetBytes.WithLabelValues(keyType).Observe(float64(size))
}

// OnRequest marks a request as in flight.
func (r *Registry) OnRequest(context.Context, string, string) {
	r.HTTPRequestsInFlight.Inc()
}

// OnResponse records a served request with its duration.
func (r *Registry) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	r.HTTPRequestsInFlight.Dec()
	s := strconv.Itoa(code)
	r.HTTPRequestsTotal.WithLabelValues(method, route, s).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route, s).Observe(d.Seconds())
}
