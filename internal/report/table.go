package report

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Table renders the report as a terminal table, one row per reason.
func Table(r *Report) string {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.SetTitle(r.Header())
	w.AppendHeader(table.Row{"Category", "Reason", "Count"})
	for i, b := range r.Buckets {
		if i > 0 {
			w.AppendSeparator()
		}
		if len(b.Reasons) == 0 {
			w.AppendRow(table.Row{b.Title, "None", ""})
			continue
		}
		for _, rc := range b.Reasons {
			w.AppendRow(table.Row{b.Title, rc.Reason, rc.Count})
		}
	}
	w.AppendFooter(table.Row{"OUTPUT", r.Metrics.Total, ""})
	w.AppendFooter(table.Row{"OKAY", r.Metrics.Accepted, ""})
	w.AppendFooter(table.Row{"REJECTED", r.Metrics.Rejected, ""})
	if r.Metrics.Reworked > 0 {
		w.AppendFooter(table.Row{"REWORK", r.Metrics.Reworked, ""})
	}
	w.AppendFooter(table.Row{"COVER MISMATCH", r.Metrics.CoverMismatch, ""})
	w.AppendFooter(table.Row{"YIELD", FormatYield(r.Yield), ""})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 48},
		{Number: 3, Align: text.AlignRight},
	})
	return w.Render()
}
