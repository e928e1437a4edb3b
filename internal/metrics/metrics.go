// Package metrics holds the Prometheus collectors for barledger.
// Each Metrics value owns its own registry so several stores can be open in
// one process (and in tests) without duplicate registration panics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

const namespace = "barledger"

// Metrics groups every collector.
type Metrics struct {
	registry *prometheus.Registry

	UsersRegistered      prometheus.Counter
	LoginAttempts        *prometheus.CounterVec
	DrinkOperations      *prometheus.CounterVec
	TransactionsRecorded *prometheus.CounterVec
	LedgerBalance        prometheus.Gauge
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		UsersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_registered_total",
			Help:      "Number of user accounts created.",
		}),

		LoginAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "login_attempts_total",
				Help:      "Credential checks by result.",
			},
			[]string{"result"},
		),

		DrinkOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "drink_operations_total",
				Help:      "Inventory mutations by operation.",
			},
			[]string{"operation"},
		),

		TransactionsRecorded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transactions_recorded_total",
				Help:      "Ledger rows appended by kind.",
			},
			[]string{"kind"},
		),

		LedgerBalance: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ledger_balance",
			Help:      "Last computed ledger balance.",
		}),
	}
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordLogin counts a credential check.
func (m *Metrics) RecordLogin(ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	m.LoginAttempts.WithLabelValues(result).Inc()
}

// RecordDrinkOperation counts an inventory mutation (add, update, delete).
func (m *Metrics) RecordDrinkOperation(operation string) {
	m.DrinkOperations.WithLabelValues(operation).Inc()
}

// RecordTransaction counts an appended ledger row.
func (m *Metrics) RecordTransaction(kind string) {
	m.TransactionsRecorded.WithLabelValues(kind).Inc()
}

// SetBalance publishes the balance. The gauge is a float; the ledger itself
// stays exact.
func (m *Metrics) SetBalance(balance decimal.Decimal) {
	m.LedgerBalance.Set(balance.InexactFloat64())
}
