package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"fqc-report-go/internal/dataset"
	"fqc-report-go/internal/metrics"
)

// Config is read from the environment (and an optional .env file). CLI
// flags override individual fields.
type Config struct {
	Label      string
	Catalog    string
	Similarity string
	Cutoff     float64
	Columns    dataset.Columns
	HeaderRows int
	Sentinels  metrics.Sentinels
	OutDir     string
	Format     string
	Open       bool
	WriteRetry time.Duration

	Port        string
	MaxUploadMB int64
}

func Default() Config {
	return Config{
		Label:       "3DE TECH",
		Catalog:     "standard",
		Similarity:  "sequence",
		Cutoff:      0.8,
		Columns:     dataset.DefaultColumns,
		HeaderRows:  1,
		Sentinels:   metrics.DefaultSentinels,
		Format:      "xlsx",
		WriteRetry:  10 * time.Second,
		Port:        "8080",
		MaxUploadMB: 32,
	}
}

// Load applies FQC_* environment variables over Default.
func Load() (Config, error) {
	_ = godotenv.Load() // loads .env when present

	c := Default()
	c.Label = envOr("FQC_LABEL", c.Label)
	c.Catalog = envOr("FQC_CATALOG", c.Catalog)
	c.Similarity = envOr("FQC_SIMILARITY", c.Similarity)
	c.Columns.Status = envOr("FQC_STATUS_COLUMN", c.Columns.Status)
	c.Columns.Reason = envOr("FQC_REASON_COLUMN", c.Columns.Reason)
	c.Columns.Cover = envOr("FQC_COVER_COLUMN", c.Columns.Cover)
	c.Sentinels.Accepted = envOr("FQC_ACCEPTED", c.Sentinels.Accepted)
	c.Sentinels.Rework = envOr("FQC_REWORK", c.Sentinels.Rework)
	c.Sentinels.CoverMismatch = envOr("FQC_COVER_MISMATCH", c.Sentinels.CoverMismatch)
	c.OutDir = envOr("FQC_OUT_DIR", c.OutDir)
	c.Format = envOr("FQC_FORMAT", c.Format)
	c.Port = envOr("PORT", c.Port)

	var err error
	if c.Cutoff, err = envFloat("FQC_CUTOFF", c.Cutoff); err != nil {
		return Config{}, err
	}
	if c.HeaderRows, err = envInt("FQC_HEADER_ROWS", c.HeaderRows); err != nil {
		return Config{}, err
	}
	if c.Open, err = envBool("FQC_OPEN", c.Open); err != nil {
		return Config{}, err
	}
	if c.WriteRetry, err = envDuration("FQC_WRITE_RETRY", c.WriteRetry); err != nil {
		return Config{}, err
	}
	mb, err := envInt("FQC_MAX_UPLOAD_MB", int(c.MaxUploadMB))
	if err != nil {
		return Config{}, err
	}
	c.MaxUploadMB = int64(mb)
	return c, c.Validate()
}

// Validate checks ranges that would otherwise fail deep in a run.
func (c Config) Validate() error {
	if c.Cutoff < 0 || c.Cutoff > 1 {
		return fmt.Errorf("cutoff %v outside [0,1]", c.Cutoff)
	}
	if c.HeaderRows < 0 {
		return fmt.Errorf("header rows %d is negative", c.HeaderRows)
	}
	switch strings.ToLower(c.Format) {
	case "xlsx", "txt":
	default:
		return fmt.Errorf("unknown format %q (want xlsx or txt)", c.Format)
	}
	return nil
}

func envOr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}

func envFloat(k string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return f, nil
}

func envBool(k string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", k, err)
	}
	return b, nil
}

func envDuration(k string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return d, nil
}
