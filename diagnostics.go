package composite

import (
	"strings"

	"github.com/Delta456/box-cli-maker/v2"
	"github.com/alexeyco/simpletable"
	"github.com/ezachrisen/composite/connective"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Long lines in the report are wrapped to this width.
const reportWidth = 100

// Report produces a diagnostic report of the evaluation: the connective,
// how it was substituted and parsed, the result of each sub-rule, and the
// error (if any) that made the composite false.
func (u *Result) Report() string {
	Box := box.New(box.Config{Px: 2, Py: 1, Type: "Double", Color: "Cyan", TitlePos: "Top", ContentAlign: "Left"})

	s := strings.Builder{}
	s.WriteString("Rule:\n")
	s.WriteString("-----\n")
	s.WriteString(u.Rule)
	s.WriteString("\n\n")

	s.WriteString("Connective:\n")
	s.WriteString("-----------\n")
	if u.Connective == "" {
		s.WriteString("(none, all rules must pass)")
	} else {
		s.WriteString(text.WrapSoft(u.Connective, reportWidth))
	}
	s.WriteString("\n\n")

	if u.Expression != "" {
		s.WriteString("Expression:\n")
		s.WriteString("-----------\n")
		s.WriteString(text.WrapSoft(u.Expression, reportWidth))
		s.WriteString("\n")
		if e, err := connective.Parse(u.Expression); err == nil {
			s.WriteString(text.WrapSoft(e.String(), reportWidth))
			s.WriteString("\n")
		}
		s.WriteString("\n")
	}

	s.WriteString("Rule Results:\n")
	s.WriteString("-------------\n")
	s.WriteString(u.resultTable().String())
	s.WriteString("\n\n")

	s.WriteString("Outcome:\n")
	s.WriteString("--------\n")
	s.WriteString(passFail(u.Pass))
	s.WriteString(" (")
	s.WriteString(string(u.Reason()))
	s.WriteString(")")
	if u.Err != nil {
		s.WriteString("\n")
		s.WriteString(text.WrapSoft(u.Err.Error(), reportWidth))
	}
	return Box.String("COMPOSITE RULE DIAGNOSTIC REPORT", s.String())
}

func (u *Result) resultTable() *simpletable.Table {
	table := simpletable.New()
	table.Header = &simpletable.Header{
		Cells: []*simpletable.Cell{
			{Align: simpletable.AlignCenter, Text: "Rule"},
			{Align: simpletable.AlignCenter, Text: "Result"},
		},
	}

	for _, name := range u.Order {
		r := []*simpletable.Cell{
			{Text: name},
			{Align: simpletable.AlignCenter, Text: passFail(u.Results[name])},
		}
		table.Body.Cells = append(table.Body.Cells, r)
	}

	table.SetStyle(simpletable.StyleUnicode)
	return table
}
