// Package report assembles the yield report in memory and renders it as an
// xlsx workbook, a plain-text report, a PNG bar chart or a terminal table.
package report

import (
	"fmt"
	"strings"
	"time"

	"fqc-report-go/internal/aggregator"
	"fqc-report-go/internal/metrics"
)

const DateLayout = "2006-01-02"

// Report is everything a renderer needs. It is built once and not mutated.
type Report struct {
	RunID   string                   `json:"run_id"`
	Label   string                   `json:"label"`
	Date    string                   `json:"date"`
	Metrics metrics.Metrics          `json:"metrics"`
	Yield   float64                  `json:"yield"`
	Buckets []aggregator.Bucket      `json:"buckets"`
	Reasons []aggregator.ReasonCount `json:"reasons"`
}

// Build assembles a report. reasons is the non-sentinel tally used for the chart.
func Build(runID, label string, at time.Time, m metrics.Metrics, agg aggregator.Aggregation, reasons []aggregator.ReasonCount) *Report {
	if reasons == nil {
		reasons = []aggregator.ReasonCount{}
	}
	return &Report{
		RunID:   runID,
		Label:   label,
		Date:    at.Format(DateLayout),
		Metrics: m,
		Yield:   m.Yield(),
		Buckets: agg.Buckets,
		Reasons: reasons,
	}
}

// Header is the first line of every rendering.
func (r *Report) Header() string {
	return fmt.Sprintf("REPORT FOR %s: %s", strings.ToUpper(r.Label), r.Date)
}

// Line is a labelled summary value.
type Line struct {
	Label string
	Value any
}

// Summary returns OUTPUT, OKAY, REJECTED, REWORK (only when non-zero) and YIELD.
func (r *Report) Summary() []Line {
	lines := []Line{
		{"OUTPUT", r.Metrics.Total},
		{"OKAY", r.Metrics.Accepted},
		{"REJECTED", r.Metrics.Rejected},
	}
	if r.Metrics.Reworked > 0 {
		lines = append(lines, Line{"REWORK", r.Metrics.Reworked})
	}
	return append(lines, Line{"YIELD", FormatYield(r.Yield)})
}

// SectionTitle is the heading printed above a bucket.
func SectionTitle(b aggregator.Bucket) string {
	return b.Title + " REJECTIONS"
}

func FormatYield(y float64) string {
	return fmt.Sprintf("%.2f%%", y)
}
