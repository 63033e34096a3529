package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ezachrisen/composite"
	"github.com/ezachrisen/composite/cel"
	"github.com/ezachrisen/composite/metrics"
	"github.com/ezachrisen/composite/ruleset"
)

type evalOptions struct {
	rules   string
	facts   string
	fire    bool
	report  bool
	metrics bool
}

func newEvalCmd(root *rootOptions) *cobra.Command {
	opts := &evalOptions{}
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a rule definition against a set of facts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd.OutOrStdout(), root.logger, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.rules, "rules", "r", "", "YAML rule definition (required)")
	cmd.Flags().StringVarP(&opts.facts, "facts", "f", "", "YAML facts")
	cmd.Flags().BoolVar(&opts.fire, "fire", false, "execute the rule's actions if it evaluates to true")
	cmd.Flags().BoolVar(&opts.report, "report", false, "print a diagnostic report of the evaluation")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "print evaluation and execution counters")
	_ = cmd.MarkFlagRequired("rules")
	return cmd
}

func runEval(out io.Writer, logger *zap.Logger, opts *evalOptions) error {
	def, err := ruleset.LoadFile(opts.rules)
	if err != nil {
		return err
	}

	facts := cel.Facts{}
	if opts.facts != "" {
		facts, err = ruleset.LoadFactsFile(opts.facts)
		if err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	col, err := metrics.NewCollector(reg)
	if err != nil {
		return err
	}

	rule, err := def.Build(facts,
		ruleset.WithLogger(logger),
		ruleset.WithCompositeOptions(composite.WithObserver(col)))
	if err != nil {
		return err
	}
	logger.Debug("built rule", zap.String("rule", rule.Name()), zap.Int("facts", len(facts)))

	var pass bool
	if c, ok := rule.(*composite.Composite); ok {
		fmt.Fprintln(out, c.Tree())
		res := c.EvaluateResult()
		pass = res.Pass
		fmt.Fprintln(out, res.String())
		if opts.report {
			fmt.Fprintln(out, res.Report())
		}
	} else {
		pass = rule.Evaluate()
		fmt.Fprintf(out, "%s: %s\n", rule.Name(), passFail(pass))
	}

	if opts.fire && pass {
		if err := rule.Execute(); err != nil {
			return err
		}
		b, err := yaml.Marshal(facts)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "facts after execution:")
		fmt.Fprint(out, string(b))
	}

	if opts.metrics {
		return printMetrics(out, reg)
	}
	return nil
}

func passFail(b bool) string {
	if b {
		return "PASS"
	}
	return "FAIL"
}

func printMetrics(out io.Writer, reg *prometheus.Registry) error {
	mfs, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			fmt.Fprintf(out, "%s{%s} %v\n", mf.GetName(), labels(m), m.GetCounter().GetValue())
		}
	}
	return nil
}

func labels(m *dto.Metric) string {
	ll := make([]string, 0, len(m.GetLabel()))
	for _, l := range m.GetLabel() {
		ll = append(ll, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
	}
	return strings.Join(ll, ",")
}
