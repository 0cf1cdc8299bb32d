// Package metrics expone contadores Prometheus del motor de ciclo de vida.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contadores del motor de operaciones. Un receptor nil es un no-op,
// para que los casos de uso puedan construirse sin métricas en tests.
type Metrics struct {
	operationsTotal     *prometheus.CounterVec
	rejectedTransitions prometheus.Counter
	auditWriteFailures  prometheus.Counter
}

// New registra los contadores en reg y devuelve el colector.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cartridge_operations_total",
			Help: "Operaciones de ciclo de vida aceptadas, por tipo.",
		}, []string{"type"}),
		rejectedTransitions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cartridge_transitions_rejected_total",
			Help: "Operaciones rechazadas por el validador de transiciones.",
		}),
		auditWriteFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cartridge_audit_write_failures_total",
			Help: "Escrituras de auditoría best-effort que fallaron.",
		}),
	}
	reg.MustRegister(m.operationsTotal, m.rejectedTransitions, m.auditWriteFailures)
	return m
}

// OperationAccepted cuenta una operación aceptada del tipo dado.
func (m *Metrics) OperationAccepted(opType string) {
	if m == nil {
		return
	}
	m.operationsTotal.WithLabelValues(opType).Inc()
}

// TransitionRejected cuenta un rechazo del validador.
func (m *Metrics) TransitionRejected() {
	if m == nil {
		return
	}
	m.rejectedTransitions.Inc()
}

// AuditWriteFailed cuenta una escritura de auditoría fallida.
func (m *Metrics) AuditWriteFailed() {
	if m == nil {
		return
	}
	m.auditWriteFailures.Inc()
}
