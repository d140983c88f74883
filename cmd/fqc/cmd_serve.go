package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"fqc-report-go/internal/logger"
	"fqc-report-go/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve report generation over HTTP (POST /report with a workbook upload)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	f := serveCmd.Flags()
	addEngineFlags(f)
	f.String("port", "", "listen port (default $PORT or 8080)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := logger.New()
	log.WithField("service", "fqc").Info("starting service")

	engine, err := newEngine(cfg, log)
	if err != nil {
		return err
	}
	srv := server.New(engine, pipelineOptions(cfg), cfg.MaxUploadMB<<20, log).
		HTTPServer(fmt.Sprintf(":%s", cfg.Port))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", srv.Addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("server terminated")
		return err
	}
	return nil
}
