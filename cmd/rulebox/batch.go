package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vitaliisemenov/rulebox/internal/rbmetrics"
	"github.com/vitaliisemenov/rulebox/rulebox"
)

var (
	batchInputPath string
	metricsAddr    string
)

func init() {
	batchCmd.Flags().StringVarP(&batchInputPath, "input", "i", "", "path to a newline-delimited file of texts to classify (required)")
	batchCmd.MarkFlagRequired("input")
	batchCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address after the batch completes, until interrupted")
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Assign labels to every line of an input file",
	RunE:  runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	if cfg.Rules.Path == "" {
		return fmt.Errorf("no rule catalog: pass --rules or set rules.path in --config")
	}
	if metricsAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr = metricsAddr
	}

	cat, err := rulebox.FromPath(cfg.Rules.Path)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	inputs, err := readLines(batchInputPath)
	if err != nil {
		return fmt.Errorf("reading input file: %w", err)
	}

	metrics := rbmetrics.New()

	start := time.Now()
	results := cat.AssignLabelsBatchWithWorkers(inputs, cfg.Batch.WorkersOverride)
	elapsed := time.Since(start)

	labelCount := 0
	for _, r := range results {
		labelCount += len(r)
	}
	metrics.Observe(elapsed.Seconds(), len(inputs), labelCount)
	logger.Info("batch complete", "inputs", len(inputs), "labels_assigned", labelCount, "duration", elapsed)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return err
	}

	if cfg.Metrics.Enabled {
		return serveMetricsUntilInterrupted(metrics)
	}
	return nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

// serveMetricsUntilInterrupted exposes m on cfg.Metrics.Addr so a scrape can
// observe this run's batch metrics after the results have already been
// printed, blocking until SIGINT/SIGTERM so the process doesn't exit before
// anything gets a chance to scrape it. If the server never manages to start
// (bad address, port in use), it returns that error immediately instead of
// blocking forever on a signal that a one-shot invocation has no way to send.
func serveMetricsUntilInterrupted(m *rbmetrics.BatchMetrics) error {
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, m.Handler())
	server := &http.Server{Addr: cfg.Metrics.Addr, Handler: mux}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("serving metrics", "addr", cfg.Metrics.Addr, "path", cfg.Metrics.Path)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("starting metrics server: %w", err)
		}
		return nil
	case <-quit:
	}

	logger.Info("shutting down metrics server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("metrics server forced to shutdown", "error", err)
		return err
	}
	return nil
}
