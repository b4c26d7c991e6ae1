package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/ndewijer/investment-goal-tracker/internal/allocator"
)

// plan is the printable form of one computed schedule.
type plan struct {
	Policy   allocator.Policy `json:"policy" yaml:"policy"`
	Goal     string           `json:"goal" yaml:"goal"`
	Adjusted bool             `json:"adjusted" yaml:"adjusted"`
	Months   []planMonth      `json:"months" yaml:"months"`
}

type planMonth struct {
	Month       string `json:"month" yaml:"month"`
	Amount      string `json:"amount" yaml:"amount"`
	Accumulated string `json:"accumulated" yaml:"accumulated"`
}

func newPlan(req allocator.Request, res allocator.Result) plan {
	preview := allocator.Preview(res.Schedule)
	months := make([]planMonth, len(preview))
	for i, v := range preview {
		months[i] = planMonth{
			Month:       v.Month,
			Amount:      v.Amount.StringFixed(2),
			Accumulated: v.Accumulated.StringFixed(2),
		}
	}
	return plan{
		Policy:   req.Policy,
		Goal:     req.Goal.StringFixed(2),
		Adjusted: res.Adjusted,
		Months:   months,
	}
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func render(w io.Writer, format string, plans []plan) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if len(plans) == 1 {
			return enc.Encode(plans[0])
		}
		return enc.Encode(plans)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		if len(plans) == 1 {
			return enc.Encode(plans[0])
		}
		return enc.Encode(plans)
	case "table", "":
		for i, p := range plans {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if err := renderTable(w, p); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q: use table, json or yaml", format)
	}
}

func renderTable(w io.Writer, p plan) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("MONTH", "AMOUNT", "ACCUMULATED").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, m := range p.Months {
		t.Row(m.Month, m.Amount, m.Accumulated)
	}

	title := fmt.Sprintf("%s plan for %s over %d months", p.Policy, p.Goal, len(p.Months))
	if p.Adjusted {
		title += " (rounded down to stay within goal)"
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n", title, t.String())
	return err
}
