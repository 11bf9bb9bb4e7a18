package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the service.
type Metrics struct {
	UpstreamRequests *prometheus.CounterVec
	FilterRuns       prometheus.Counter
	PeopleExported   prometheus.Counter
}

// New registers all metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers all metrics on the given registerer. Tests pass a
// fresh registry to avoid duplicate-registration panics.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		UpstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "elvanto_upstream_requests_total",
			Help: "Requests issued against the Elvanto API, by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		FilterRuns: factory.NewCounter(prometheus.CounterOpts{
			Name: "elvanto_filter_runs_total",
			Help: "Completed filter/aggregation requests.",
		}),
		PeopleExported: factory.NewCounter(prometheus.CounterOpts{
			Name: "elvanto_people_exported_total",
			Help: "People rows written into exported spreadsheets.",
		}),
	}
}

// ObserveUpstreamRequest records one upstream call. Safe on a nil
// receiver so collaborators can run without metrics in tests.
func (m *Metrics) ObserveUpstreamRequest(endpoint, outcome string) {
	if m == nil {
		return
	}
	m.UpstreamRequests.WithLabelValues(endpoint, outcome).Inc()
}

// ObserveFilterRun records one completed aggregation.
func (m *Metrics) ObserveFilterRun() {
	if m == nil {
		return
	}
	m.FilterRuns.Inc()
}

// ObservePeopleExported records rows written to an export.
func (m *Metrics) ObservePeopleExported(n int) {
	if m == nil {
		return
	}
	m.PeopleExported.Add(float64(n))
}
