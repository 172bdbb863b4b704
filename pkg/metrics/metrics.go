// Package metrics exposes Prometheus counters for the scheduling domain.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the operation counters incremented by services and use
// cases. A nil *Metrics is valid and counts nothing, so tests can omit it.
type Metrics struct {
	Signups       prometheus.Counter
	Cancellations prometheus.Counter
	CheckIns      prometheus.Counter
	CheckOuts     prometheus.Counter
	NoShows       prometheus.Counter
	WalkIns       prometheus.Counter
}

// New registers the counters on reg and returns them.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Signups: factory.NewCounter(prometheus.CounterOpts{
			Name: "treelot_signups_total",
			Help: "Number of successful shift signups.",
		}),
		Cancellations: factory.NewCounter(prometheus.CounterOpts{
			Name: "treelot_cancellations_total",
			Help: "Number of successful assignment cancellations.",
		}),
		CheckIns: factory.NewCounter(prometheus.CounterOpts{
			Name: "treelot_checkins_total",
			Help: "Number of successful volunteer check-ins.",
		}),
		CheckOuts: factory.NewCounter(prometheus.CounterOpts{
			Name: "treelot_checkouts_total",
			Help: "Number of successful volunteer check-outs.",
		}),
		NoShows: factory.NewCounter(prometheus.CounterOpts{
			Name: "treelot_noshows_total",
			Help: "Number of assignments marked as no-shows.",
		}),
		WalkIns: factory.NewCounter(prometheus.CounterOpts{
			Name: "treelot_walkins_total",
			Help: "Number of walk-in volunteers added.",
		}),
	}
}

// IncSignups increments the signup counter if metrics are enabled.
func (m *Metrics) IncSignups() {
	if m != nil {
		m.Signups.Inc()
	}
}

// IncCancellations increments the cancellation counter if metrics are enabled.
func (m *Metrics) IncCancellations() {
	if m != nil {
		m.Cancellations.Inc()
	}
}

// IncCheckIns increments the check-in counter if metrics are enabled.
func (m *Metrics) IncCheckIns() {
	if m != nil {
		m.CheckIns.Inc()
	}
}

// IncCheckOuts increments the check-out counter if metrics are enabled.
func (m *Metrics) IncCheckOuts() {
	if m != nil {
		m.CheckOuts.Inc()
	}
}

// IncNoShows increments the no-show counter if metrics are enabled.
func (m *Metrics) IncNoShows() {
	if m != nil {
		m.NoShows.Inc()
	}
}

// IncWalkIns increments the walk-in counter if metrics are enabled.
func (m *Metrics) IncWalkIns() {
	if m != nil {
		m.WalkIns.Inc()
	}
}
