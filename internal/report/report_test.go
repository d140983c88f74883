package report_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"fqc-report-go/internal/aggregator"
	"fqc-report-go/internal/metrics"
	"fqc-report-go/internal/report"
)

var day = time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)

func sample() *report.Report {
	agg := aggregator.Aggregation{Buckets: []aggregator.Bucket{
		{Category: "casting", Title: "CASTING", Reasons: []aggregator.ReasonCount{{Reason: "Dust inside resin", Count: 3}, {Reason: "Micro bubble", Count: 1}}},
		{Category: "shell", Title: "SHELL", Reasons: []aggregator.ReasonCount{}},
		{Category: "other", Title: "OTHER", Reasons: []aggregator.ReasonCount{{Reason: "Xyzzy", Count: 2}}},
	}}
	m := metrics.Metrics{Total: 20, Accepted: 13, Rejected: 6, Reworked: 1, CoverMismatch: 2}
	reasons := []aggregator.ReasonCount{{Reason: "Dust inside resin", Count: 3}, {Reason: "Micro bubble", Count: 1}, {Reason: "Xyzzy", Count: 2}}
	return report.Build("run-1", "3de tech", day, m, agg, reasons)
}

func TestBuild(t *testing.T) {
	r := sample()
	if r.Date != "2026-10-19" {
		t.Errorf("Date = %q", r.Date)
	}
	if got := r.Header(); got != "REPORT FOR 3DE TECH: 2026-10-19" {
		t.Errorf("Header = %q", got)
	}
	if r.Yield != 65 {
		t.Errorf("Yield = %v, want 65", r.Yield)
	}
}

func TestSummary_ReworkOnlyWhenPresent(t *testing.T) {
	r := report.Build("", "x", day, metrics.Metrics{Total: 4, Accepted: 4}, aggregator.Aggregation{}, nil)
	var labels []string
	for _, l := range r.Summary() {
		labels = append(labels, l.Label)
	}
	if diff := cmp.Diff([]string{"OUTPUT", "OKAY", "REJECTED", "YIELD"}, labels); diff != "" {
		t.Errorf("Summary labels mismatch (-want +got):\n%s", diff)
	}
	if got := r.Summary()[3].Value; got != "100.00%" {
		t.Errorf("YIELD = %v, want 100.00%%", got)
	}
}

func TestEncodeText(t *testing.T) {
	want := `REPORT FOR 3DE TECH: 2026-10-19

OUTPUT: 20
OKAY: 13
REJECTED: 6
REWORK: 1
YIELD: 65.00%

REJECTION DETAILS:

CASTING REJECTIONS
Dust inside resin  3
Micro bubble       1

SHELL REJECTIONS
None

OTHER REJECTIONS
Xyzzy              2

COVER MISMATCH: 2
`
	got := string(report.EncodeText(sample()))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("EncodeText mismatch (-want +got):\n%s", diff)
	}
	if !bytes.Equal(report.EncodeText(sample()), report.EncodeText(sample())) {
		t.Error("EncodeText is not deterministic")
	}
}

func TestEncodeXLSX(t *testing.T) {
	data, err := report.EncodeXLSX(sample())
	if err != nil {
		t.Fatalf("EncodeXLSX: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	if diff := cmp.Diff([]string{report.ReportSheet, report.ReasonsSheet}, f.GetSheetList()); diff != "" {
		t.Errorf("sheets mismatch (-want +got):\n%s", diff)
	}

	rows, err := f.GetRows(report.ReportSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	var flat []string
	for _, r := range rows {
		flat = append(flat, strings.TrimSpace(strings.Join(r, " ")))
	}
	want := []string{
		"REPORT FOR 3DE TECH: 2026-10-19",
		"",
		"OUTPUT 20",
		"OKAY 13",
		"REJECTED 6",
		"REWORK 1",
		"YIELD 65.00%",
		"",
		"CASTING REJECTIONS",
		"Dust inside resin 3",
		"Micro bubble 1",
		"",
		"SHELL REJECTIONS",
		"None",
		"",
		"OTHER REJECTIONS",
		"Xyzzy 2",
		"",
		"COVER MISMATCH 2",
	}
	if diff := cmp.Diff(want, flat); diff != "" {
		t.Errorf("Report sheet mismatch (-want +got):\n%s", diff)
	}

	reasons, err := f.GetRows(report.ReasonsSheet)
	if err != nil {
		t.Fatalf("GetRows reasons: %v", err)
	}
	if len(reasons) != 4 || reasons[1][0] != "Dust inside resin" || reasons[1][1] != "3" {
		t.Errorf("Reasons sheet = %v", reasons)
	}
}

func TestEncodeXLSX_Empty(t *testing.T) {
	r := report.Build("", "ihc", day, metrics.Metrics{}, aggregator.Aggregation{
		Buckets: []aggregator.Bucket{{Category: "other", Title: "OTHER", Reasons: []aggregator.ReasonCount{}}},
	}, nil)
	if _, err := report.EncodeXLSX(r); err != nil {
		t.Fatalf("EncodeXLSX: %v", err)
	}
}

func TestEncodeChart(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n")
	for name, r := range map[string]*report.Report{
		"with reasons": sample(),
		"empty":        report.Build("", "x", day, metrics.Metrics{}, aggregator.Aggregation{}, nil),
	} {
		t.Run(name, func(t *testing.T) {
			data, err := report.EncodeChart(r)
			if err != nil {
				t.Fatalf("EncodeChart: %v", err)
			}
			if !bytes.HasPrefix(data, png) {
				t.Fatalf("chart is not a PNG")
			}
		})
	}
}

func TestTable(t *testing.T) {
	out := report.Table(sample())
	for _, want := range []string{"REPORT FOR 3DE TECH", "Dust inside resin", "None", "65.00%", "COVER MISMATCH"} {
		if !strings.Contains(out, want) {
			t.Errorf("Table missing %q:\n%s", want, out)
		}
	}
}
