package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"fqc-report-go/internal/catalog"
	"fqc-report-go/internal/classify"
	"fqc-report-go/internal/config"
	"fqc-report-go/internal/logger"
	"fqc-report-go/internal/output"
	"fqc-report-go/internal/pipeline"
)

// addEngineFlags registers the flags shared by report and serve. Unset
// flags leave the environment configuration alone.
func addEngineFlags(fs *pflag.FlagSet) {
	fs.String("label", "", "report label shown in the header (default $FQC_LABEL or 3DE TECH)")
	fs.String("catalog", "", "keyword catalog: standard, reduced, or a .yaml/.toml file")
	fs.String("similarity", "", "similarity measure: sequence or levenshtein")
	fs.Float64("cutoff", 0, "minimum similarity for a keyword hit (default 0.8)")
	fs.String("status-col", "", "status column, letter or header text (default C)")
	fs.String("reason-col", "", "rejection reason column (default D)")
	fs.String("cover-col", "", "cover mismatch marker column (default D)")
	fs.Int("header-rows", 1, "rows to skip above the data")
}

// loadConfig reads the environment and applies explicitly set flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	fs := cmd.Flags()
	str := func(name string, dst *string) {
		if fs.Changed(name) {
			*dst, _ = fs.GetString(name)
		}
	}
	str("label", &cfg.Label)
	str("catalog", &cfg.Catalog)
	str("similarity", &cfg.Similarity)
	str("status-col", &cfg.Columns.Status)
	str("reason-col", &cfg.Columns.Reason)
	str("cover-col", &cfg.Columns.Cover)
	str("format", &cfg.Format)
	str("out-dir", &cfg.OutDir)
	str("port", &cfg.Port)
	if fs.Changed("cutoff") {
		cfg.Cutoff, _ = fs.GetFloat64("cutoff")
	}
	if fs.Changed("header-rows") {
		cfg.HeaderRows, _ = fs.GetInt("header-rows")
	}
	if fs.Changed("open") {
		cfg.Open, _ = fs.GetBool("open")
	}
	return cfg, cfg.Validate()
}

func newClassifier(cfg config.Config) (*classify.Classifier, error) {
	cat, err := catalog.Resolve(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	sim, err := classify.SimilarityByName(cfg.Similarity)
	if err != nil {
		return nil, err
	}
	return classify.NewClassifier(cat, classify.WithSimilarity(sim), classify.WithCutoff(cfg.Cutoff)), nil
}

func newEngine(cfg config.Config, log *logger.Logger, opts ...pipeline.EngineOption) (*pipeline.Engine, error) {
	cls, err := newClassifier(cfg)
	if err != nil {
		return nil, err
	}
	log.WithField("catalog", cfg.Catalog).
		WithField("categories", cls.Catalog().Names()).
		WithField("similarity", cfg.Similarity).
		WithField("cutoff", cfg.Cutoff).
		Debug("classifier ready")
	return pipeline.New(cls, output.NewWriter(log, cfg.WriteRetry), log, opts...), nil
}

func pipelineOptions(cfg config.Config) pipeline.Options {
	return pipeline.Options{
		Label:      cfg.Label,
		Columns:    cfg.Columns,
		HeaderRows: cfg.HeaderRows,
		Sentinels:  cfg.Sentinels,
		Format:     cfg.Format,
		OutDir:     cfg.OutDir,
	}
}
