package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds the portal collectors plus the Go and process collectors.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

var (
	SignIns = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_sign_in_total",
		Help: "Sign-in attempts by result.",
	}, []string{"result"})

	SignUps = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_sign_up_total",
		Help: "Sign-up attempts by result.",
	}, []string{"result"})

	PropertyPins = factory.NewCounter(prometheus.CounterOpts{
		Name: "portal_property_pins_total",
		Help: "Map clicks captured while in add-property mode.",
	})

	OrgContextDegraded = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_org_context_degraded_total",
		Help: "Organization context reads that failed and were served empty.",
	}, []string{"read"})

	ViewStates = factory.NewGaugeVec(prometheus.GaugeOpts{
		Name: "portal_view_states",
		Help: "Mounted per-page UI states by kind.",
	}, []string{"kind"})
)
