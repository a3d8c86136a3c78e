// Package metrics exports kaoto's pipeline, link, cache and HTTP events as
// Prometheus metrics.
//
// A [Registry] owns its own prometheus.Registry so that tests and embedded
// servers never collide on the global default. It implements every hook
// interface from [github.com/Ortofta/kaoto/pkg/observability], so wiring it
// up is a matter of registering it at startup:
//
//	m := metrics.NewRegistry()
//	observability.SetPipelineHooks(m)
//	observability.SetLinkHooks(m)
//	observability.SetCacheHooks(m)
//	observability.SetHTTPHooks(m)
//	http.Handle("/metrics", m.Handler())
package metrics
