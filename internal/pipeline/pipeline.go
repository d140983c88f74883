// Package pipeline runs one report: load the workbook, compute metrics,
// classify rejection reasons, render every output in memory, then write.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fqc-report-go/internal/aggregator"
	"fqc-report-go/internal/classify"
	"fqc-report-go/internal/dataset"
	"fqc-report-go/internal/logger"
	"fqc-report-go/internal/metrics"
	"fqc-report-go/internal/output"
	"fqc-report-go/internal/report"
)

const (
	XLSXName  = "output.xlsx"
	TextName  = "output.txt"
	ChartName = "rejection_chart.png"
)

// Opener is called with each written file once a run succeeds.
type Opener interface {
	Open(path string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(path string) error

func (f OpenerFunc) Open(path string) error { return f(path) }

type Options struct {
	Label      string
	Columns    dataset.Columns
	HeaderRows int
	Sentinels  metrics.Sentinels
	// Format is "xlsx" or "txt".
	Format string
	// OutDir defaults to the input workbook's directory.
	OutDir string
}

type Result struct {
	Report *report.Report
	Files  []string
}

type Engine struct {
	cls    *classify.Classifier
	writer *output.Writer
	opener Opener
	now    func() time.Time
	log    *logger.Logger
}

type EngineOption func(*Engine)

// WithOpener installs the post-generation hook.
func WithOpener(o Opener) EngineOption {
	return func(e *Engine) { e.opener = o }
}

// WithClock replaces time.Now for the report date.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

func New(cls *classify.Classifier, writer *output.Writer, log *logger.Logger, opts ...EngineOption) *Engine {
	e := &Engine{cls: cls, writer: writer, now: time.Now, log: log.Component("pipeline")}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Analyze computes the report for a loaded sheet without touching disk.
func (e *Engine) Analyze(sheet *dataset.Sheet, opts Options) (*report.Report, error) {
	log, runID := e.log.WithRun()
	return e.analyze(log, runID, sheet, opts)
}

func (e *Engine) analyze(log *logger.Logger, runID string, sheet *dataset.Sheet, opts Options) (*report.Report, error) {
	cells, err := sheet.Extract(opts.Columns, opts.HeaderRows)
	if err != nil {
		return nil, err
	}

	m := metrics.Calculate(cells.Status, cells.Cover, opts.Sentinels)
	sentinels := opts.Sentinels.List()
	tally := aggregator.Tally(cells.Reason)
	agg := aggregator.New(e.cls, sentinels).Aggregate(tally)

	log.WithFields(map[string]interface{}{
		"sheet":    sheet.Name,
		"total":    m.Total,
		"accepted": m.Accepted,
		"rejected": m.Rejected,
		"reasons":  len(tally),
		"excluded": aggregator.Sum(agg.Excluded),
	}).Info("sheet analyzed")
	for _, b := range agg.Buckets {
		log.WithField("category", b.Category).WithField("count", b.Total()).Debug("bucket")
	}

	return report.Build(runID, opts.Label, e.now(), m, agg, aggregator.Without(tally, sentinels)), nil
}

// Render produces the report file and the chart for dir.
func Render(r *report.Report, dir, format string) ([]output.File, error) {
	var main output.File
	switch strings.ToLower(format) {
	case "", "xlsx":
		data, err := report.EncodeXLSX(r)
		if err != nil {
			return nil, err
		}
		main = output.File{Path: filepath.Join(dir, XLSXName), Data: data}
	case "txt", "text":
		main = output.File{Path: filepath.Join(dir, TextName), Data: report.EncodeText(r)}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}

	chart, err := report.EncodeChart(r)
	if err != nil {
		return nil, err
	}
	return []output.File{main, {Path: filepath.Join(dir, ChartName), Data: chart}}, nil
}

// Run processes the workbook at path end to end. Nothing is written unless
// every output rendered successfully.
func (e *Engine) Run(ctx context.Context, path string, opts Options) (*Result, error) {
	log, runID := e.log.WithRun()
	log = &logger.Logger{Entry: log.WithField("input", path)}
	start := time.Now()

	sheet, err := dataset.Open(path)
	if err != nil {
		log.WithError(err).Error("load failed")
		return nil, err
	}
	r, err := e.analyze(log, runID, sheet, opts)
	if err != nil {
		log.WithError(err).Error("analyze failed")
		return nil, err
	}

	dir := opts.OutDir
	if dir == "" {
		dir = filepath.Dir(path)
	}
	files, err := Render(r, dir, opts.Format)
	if err != nil {
		log.WithError(err).Error("render failed")
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.writer.WriteAll(ctx, files); err != nil {
		log.WithError(err).Error("write failed")
		return nil, err
	}

	res := &Result{Report: r}
	for _, f := range files {
		res.Files = append(res.Files, f.Path)
	}
	log.WithField("files", res.Files).WithField("duration_ms", time.Since(start).Milliseconds()).Info("report generated")

	if e.opener != nil {
		for _, p := range res.Files {
			if err := e.opener.Open(p); err != nil {
				log.WithError(err).WithField("path", p).Warn("could not open output")
			}
		}
	}
	return res, nil
}
