// Package metrics exposes ledger activity as Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "careerloans"

// Retirement reasons.
const (
	RetiredPaid   = "paid"
	RetiredTerm   = "term"
	RetiredPayoff = "payoff"
)

// Ledger holds the collectors a ledger reports into. A nil *Ledger is valid
// and records nothing.
type Ledger struct {
	originated   prometheus.Counter
	principal    prometheus.Counter
	retired      *prometheus.CounterVec
	installments *prometheus.CounterVec
	shortfall    prometheus.Counter
	rejections   *prometheus.CounterVec
	active       prometheus.Gauge
}

// New builds the collectors and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Ledger {
	m := &Ledger{
		originated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loans_originated_total",
			Help:      "Loans written.",
		}),
		principal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "principal_originated_total",
			Help:      "Principal credited to the funds pool by new loans.",
		}),
		retired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loans_retired_total",
			Help:      "Loans removed from the active set by reason.",
		}, []string{"reason"}),
		installments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "installments_total",
			Help:      "Processed installments by outcome.",
		}, []string{"outcome"}),
		shortfall: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shortfall_total",
			Help:      "Scheduled payment the funds pool could not cover.",
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Rejected originations and payoffs by reason.",
		}, []string{"reason"}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_loans",
			Help:      "Loans currently in the ledger.",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.originated,
			m.principal,
			m.retired,
			m.installments,
			m.shortfall,
			m.rejections,
			m.active,
		)
	}
	return m
}

func (m *Ledger) ObserveOriginated(principal float64) {
	if m == nil {
		return
	}
	m.originated.Inc()
	m.principal.Add(principal)
}

func (m *Ledger) ObserveRetired(reason string) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	m.retired.WithLabelValues(reason).Inc()
}

// ObserveInstallment counts one processed installment. A positive shortfall
// marks it short and adds to the shortfall total.
func (m *Ledger) ObserveInstallment(shortfall float64) {
	if m == nil {
		return
	}
	if shortfall > 0 {
		m.installments.WithLabelValues("short").Inc()
		m.shortfall.Add(shortfall)
		return
	}
	m.installments.WithLabelValues("full").Inc()
}

func (m *Ledger) ObserveRejection(reason string) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	m.rejections.WithLabelValues(reason).Inc()
}

func (m *Ledger) SetActive(n int) {
	if m == nil {
		return
	}
	m.active.Set(float64(n))
}

// Collectors returns every collector, for callers that gather manually.
func (m *Ledger) Collectors() []prometheus.Collector {
	if m == nil {
		return nil
	}
	return []prometheus.Collector{
		m.originated,
		m.principal,
		m.retired,
		m.installments,
		m.shortfall,
		m.rejections,
		m.active,
	}
}
