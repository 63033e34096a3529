// Package metrics counts composite rule evaluations and executions with
// Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ezachrisen/composite"
)

const namespace = "composite"

// Collector implements composite.Observer.
type Collector struct {
	evaluations *prometheus.CounterVec
	executions  *prometheus.CounterVec
}

var _ composite.Observer = (*Collector)(nil)

// NewCollector creates the counters and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Composite rule evaluations by outcome reason",
		}, []string{"rule", "reason"}),
		executions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "executions_total",
			Help:      "Sub-rule action executions by status",
		}, []string{"rule", "status"}),
	}

	for _, cv := range []*prometheus.CounterVec{c.evaluations, c.executions} {
		if err := reg.Register(cv); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) ObserveEvaluation(r *composite.Result) {
	c.evaluations.WithLabelValues(r.Rule, string(r.Reason())).Inc()
}

func (c *Collector) ObserveExecution(rule string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.executions.WithLabelValues(rule, status).Inc()
}
