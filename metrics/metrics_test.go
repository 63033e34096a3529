package metrics

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/ezachrisen/composite"
)

func TestCollector(t *testing.T) {
	is := is.New(t)
	reg := prometheus.NewRegistry()
	col, err := NewCollector(reg)
	is.NoErr(err)

	boom := errors.New("boom")
	c := composite.New("c", composite.WithObserver(col))
	is.NoErr(c.Add(
		composite.NewBasicRule("a", "", 1).When(func() bool { return true }),
		composite.NewBasicRule("b", "", 2).When(func() bool { return true }).
			Then(func() error { return boom }),
	))

	c.Evaluate()
	c.Evaluate()
	c.SetLogicalConjunction("[a] && [x]")
	c.Evaluate()
	c.SetLogicalConjunction("[a] &&")
	c.Evaluate()
	is.True(errors.Is(c.Execute(), boom))

	is.Equal(testutil.CollectAndCount(reg, "composite_evaluations_total"), 3)
	is.Equal(testutil.ToFloat64(col.evaluations.WithLabelValues("c", "pass")), 2.0)
	is.Equal(testutil.ToFloat64(col.evaluations.WithLabelValues("c", "unknown_name")), 1.0)
	is.Equal(testutil.ToFloat64(col.evaluations.WithLabelValues("c", "format_error")), 1.0)

	is.Equal(testutil.CollectAndCount(reg, "composite_executions_total"), 2)
	is.Equal(testutil.ToFloat64(col.executions.WithLabelValues("a", "ok")), 1.0)
	is.Equal(testutil.ToFloat64(col.executions.WithLabelValues("b", "error")), 1.0)
}

func TestDoubleRegistration(t *testing.T) {
	is := is.New(t)
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg)
	is.NoErr(err)
	_, err = NewCollector(reg)
	is.True(err != nil)
}
