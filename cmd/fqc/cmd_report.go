package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fqc-report-go/internal/logger"
	"fqc-report-go/internal/pipeline"
	"fqc-report-go/internal/report"
	"fqc-report-go/internal/viewer"
)

var reportCmd = &cobra.Command{
	Use:   "report <workbook.xlsx>",
	Short: "Generate the yield report and rejection chart for a workbook",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	f := reportCmd.Flags()
	addEngineFlags(f)
	f.String("format", "", "report format: xlsx or txt (default xlsx)")
	f.String("out-dir", "", "output directory (default: next to the workbook)")
	f.Bool("open", false, "open the generated files when done")
	f.Bool("quiet", false, "do not print the summary table")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := logger.New().Component("cli")

	var opts []pipeline.EngineOption
	if cfg.Open {
		opts = append(opts, pipeline.WithOpener(viewer.System{}))
	}
	engine, err := newEngine(cfg, log, opts...)
	if err != nil {
		return err
	}

	res, err := engine.Run(cmd.Context(), args[0], pipelineOptions(cfg))
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}

	out := cmd.OutOrStdout()
	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		fmt.Fprintln(out, report.Table(res.Report))
	}
	for _, f := range res.Files {
		fmt.Fprintf(out, "Written: %s\n", f)
	}
	return nil
}
