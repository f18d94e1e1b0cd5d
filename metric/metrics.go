// Package metric exposes Prometheus instrumentation for the error
// translation layer. It implements the errors.Metrics hook so a Registry
// can report which path served each translation.
package metric

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts error translations by outcome. It satisfies
// errors.Metrics and is safe for concurrent use.
type Metrics struct {
	inboundTranslations *prometheus.CounterVec
	outboundConversions *prometheus.CounterVec
}

// New creates the translation metrics and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		inboundTranslations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wampio",
			Subsystem: "errors",
			Name:      "inbound_translations_total",
			Help:      "Wire error messages translated to typed failures, by outcome.",
		}, []string{"outcome"}),
		outboundConversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wampio",
			Subsystem: "errors",
			Name:      "outbound_conversions_total",
			Help:      "Application failures converted to invocation errors, by resolution branch.",
		}, []string{"branch"}),
	}

	for _, c := range []prometheus.Collector{m.inboundTranslations, m.outboundConversions} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register translation metrics: %w", err)
		}
	}
	return m, nil
}

// InboundTranslation implements errors.Metrics.
func (m *Metrics) InboundTranslation(outcome string) {
	m.inboundTranslations.WithLabelValues(outcome).Inc()
}

// OutboundConversion implements errors.Metrics.
func (m *Metrics) OutboundConversion(branch string) {
	m.outboundConversions.WithLabelValues(branch).Inc()
}
