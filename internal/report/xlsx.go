package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	ReportSheet  = "Report"
	ReasonsSheet = "Reasons"
)

// Workbook lays the report out on a "Report" sheet and the reason tally,
// with a column chart, on a "Reasons" sheet. The caller closes the file.
func Workbook(r *Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ReportSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("bold style: %w", err)
	}

	w := &sheetWriter{f: f, sheet: ReportSheet, bold: bold, row: 1}
	w.cell("A", r.Header(), true)
	w.row += 2
	for _, l := range r.Summary() {
		w.pair(l.Label, l.Value, true)
	}
	w.row++
	for _, b := range r.Buckets {
		w.cell("A", SectionTitle(b), true)
		w.row++
		if len(b.Reasons) == 0 {
			w.cell("A", "None", false)
			w.row++
		}
		for _, rc := range b.Reasons {
			w.pair(rc.Reason, rc.Count, false)
		}
		w.row++
	}
	w.pair("COVER MISMATCH", r.Metrics.CoverMismatch, true)
	if w.err != nil {
		_ = f.Close()
		return nil, w.err
	}
	if err := f.SetColWidth(ReportSheet, "A", "A", 40); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("column width: %w", err)
	}

	if err := addReasonsSheet(f, r, bold); err != nil {
		_ = f.Close()
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

// EncodeXLSX renders the workbook to bytes.
func EncodeXLSX(r *Report) ([]byte, error) {
	f, err := Workbook(r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func addReasonsSheet(f *excelize.File, r *Report, bold int) error {
	if _, err := f.NewSheet(ReasonsSheet); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	w := &sheetWriter{f: f, sheet: ReasonsSheet, bold: bold, row: 1}
	w.pair("REASON", "COUNT", true)
	for _, rc := range r.Reasons {
		w.pair(rc.Reason, rc.Count, false)
	}
	if w.err != nil {
		return w.err
	}
	if len(r.Reasons) == 0 {
		return nil
	}

	last := len(r.Reasons) + 1
	err := f.AddChart(ReasonsSheet, "D2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", ReasonsSheet),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", ReasonsSheet, last),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", ReasonsSheet, last),
		}},
		Title:    []excelize.RichTextRun{{Text: ChartTitle}},
		Legend:   excelize.ChartLegend{Position: "none"},
		PlotArea: excelize.ChartPlotArea{ShowVal: true},
	})
	if err != nil {
		return fmt.Errorf("add chart: %w", err)
	}
	return nil
}

// sheetWriter writes label/value rows and keeps the first error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	bold  int
	row   int
	err   error
}

func (w *sheetWriter) cell(col string, v any, bold bool) {
	if w.err != nil {
		return
	}
	ref := fmt.Sprintf("%s%d", col, w.row)
	if err := w.f.SetCellValue(w.sheet, ref, v); err != nil {
		w.err = fmt.Errorf("write %s!%s: %w", w.sheet, ref, err)
		return
	}
	if bold {
		if err := w.f.SetCellStyle(w.sheet, ref, ref, w.bold); err != nil {
			w.err = fmt.Errorf("style %s!%s: %w", w.sheet, ref, err)
		}
	}
}

func (w *sheetWriter) pair(label string, v any, bold bool) {
	w.cell("A", label, bold)
	w.cell("B", v, false)
	w.row++
}
