package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Access-decision Prometheus metrics. Defined in a standalone package to avoid
// import cycles between the portal core and the HTTP layer.

var (
	AccessDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portalgate_access_decisions_total",
		Help: "Decisiones de acceso por veredicto y tipo de recurso",
	}, []string{"verdict", "kind"})

	ActivePortalSelections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portalgate_active_portal_selections_total",
		Help: "Selecciones de portal activo por origen (explicit|auto|visit)",
	}, []string{"source"})

	StaleEvictions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "portalgate_active_portal_stale_evictions_total",
		Help: "Estados de portal activo borrados por staleness",
	})

	AuditDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "portalgate_audit_events_dropped_total",
		Help: "Eventos de auditoría descartados por buffer lleno o sink cerrado",
	})

	ResolveLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "portalgate_resolve_latency_ms",
		Help:    "Latencia de Resolve en milisegundos",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
	})
)

// Register registers the access metrics on the given registry (or default if nil).
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{
		AccessDecisions,
		ActivePortalSelections,
		StaleEvictions,
		AuditDropped,
		ResolveLatency,
	} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
