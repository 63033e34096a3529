package composite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/ezachrisen/composite/connective"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Reason summarizes why a composite evaluated the way it did.
type Reason string

const (
	ReasonPass        Reason = "pass"
	ReasonFail        Reason = "fail"
	ReasonEmpty       Reason = "empty"
	ReasonFormat      Reason = "format_error"
	ReasonUnknownName Reason = "unknown_name"
	ReasonEval        Reason = "eval_error"
)

// Result of evaluating a composite rule.
// It is created for a single evaluation and never shared.
type Result struct {
	// The name of the composite that was evaluated
	Rule string

	// The outcome of the evaluation
	Pass bool

	// The logical connective at the time of evaluation; may be empty
	Connective string

	// The connective with rule names replaced by their results.
	// Empty if there is no connective, or if substitution failed.
	Expression string

	// The result of each sub-rule, by name
	Results map[string]bool

	// Names of the sub-rules in the order they were evaluated
	Order []string

	// The error that forced the outcome to false, if any
	Err error
}

// Reason classifies the outcome.
func (u *Result) Reason() Reason {
	switch {
	case errors.Is(u.Err, connective.ErrFormat):
		return ReasonFormat
	case errors.Is(u.Err, connective.ErrUnknownName):
		return ReasonUnknownName
	case errors.Is(u.Err, connective.ErrEval):
		return ReasonEval
	case u.Pass:
		return ReasonPass
	case len(u.Order) == 0:
		return ReasonEmpty
	default:
		return ReasonFail
	}
}

// String produces a table of the sub-rules evaluated and their results.
func (u *Result) String() string {
	tw := table.NewWriter()
	tw.SetTitle(fmt.Sprintf("\nCOMPOSITE RESULT: %s %s\n", u.Rule, passFail(u.Pass)))
	tw.AppendHeader(table.Row{"Order", "Rule", "Pass/\nFail"})
	for i, name := range u.Order {
		tw.AppendRow(table.Row{humanize.Ordinal(i + 1), name, passFail(u.Results[name])})
	}
	tw.AppendFooter(table.Row{"", "Reason", string(u.Reason())})

	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	style.Format.Footer = text.FormatDefault
	tw.SetStyle(style)
	return tw.Render()
}

func passFail(b bool) string {
	if b {
		return "PASS"
	}
	return "FAIL"
}

// String returns a table of the sub-rules in evaluation order.
func (c *Composite) String() string {
	tw := table.NewWriter()
	title := "\nCOMPOSITE RULE " + c.name + "\n"
	if c.conjunction != "" {
		title += c.conjunction + "\n"
	}
	tw.SetTitle(title)
	tw.AppendHeader(table.Row{"Order", "Rule", "Priority", "Description"})

	maxWidthOfDescriptionColumn := 40
	for i, e := range c.rules {
		tw.AppendRow(table.Row{humanize.Ordinal(i + 1), e.name, e.priority, e.rule.Description()})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, WidthMax: maxWidthOfDescriptionColumn},
	})

	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)
	return tw.Render()
}

// Tree returns the rule hierarchy, descending into sub-rules that are
// themselves composites. Recursion stops at 20 levels.
//
//	root
//	├── child_1
//	│   └── grandchild_1
//	└── child_2
func (c *Composite) Tree() string {
	var sb strings.Builder
	sb.WriteString(c.name)
	sb.WriteString("\n")
	c.buildTree(&sb, "", 0)
	return sb.String()
}

func (c *Composite) buildTree(sb *strings.Builder, prefix string, depth int) {
	if depth >= 20 {
		return
	}
	for i, e := range c.rules {
		connector, childPrefix := "├── ", "│   "
		if i == len(c.rules)-1 {
			connector, childPrefix = "└── ", "    "
		}
		sb.WriteString(prefix)
		sb.WriteString(connector)
		sb.WriteString(e.name)
		sb.WriteString("\n")
		if child, ok := e.rule.(*Composite); ok {
			child.buildTree(sb, prefix+childPrefix, depth+1)
		}
	}
}
