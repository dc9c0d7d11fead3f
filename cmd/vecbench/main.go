// Command vecbench benchmarks brute-force cosine similarity search over a
// random in-memory corpus and prints the mean latency per top_k.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/viant/vecbench/bench"
	"github.com/viant/vecbench/engine"
	"github.com/viant/vecbench/history"
	"github.com/viant/vecbench/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Stdout, os.Stderr))
}

func run(ctx context.Context, stdout, stderr io.Writer) int {
	cfg, err := LoadConfig(".env")
	if err != nil {
		fmt.Fprintf(stderr, "vecbench: load config: %v\n", err)
		return 1
	}
	if err := ValidateConfig(&cfg); err != nil {
		fmt.Fprintf(stderr, "vecbench: invalid config: %v\n", err)
		return 1
	}
	logger, err := logging.New(logging.Config{Format: cfg.LogFormat, Level: cfg.LogLevel, Output: zapSync(stderr)})
	if err != nil {
		fmt.Fprintf(stderr, "vecbench: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	if err := execute(ctx, cfg, logger, stdout); err != nil {
		logger.Error("benchmark failed", zap.Error(err))
		return 1
	}
	return 0
}

func execute(ctx context.Context, cfg Config, logger *zap.Logger, stdout io.Writer) error {
	if cfg.Verify || cfg.HistoryDSN != "" {
		if err := engine.RegisterVectorFunctions(); err != nil {
			return err
		}
	}

	opts := []bench.Option{bench.WithLogger(logger)}
	if cfg.Output == "text" {
		fmt.Fprintln(stdout, "similarity search benchmark: begin")
		opts = append(opts, bench.WithOutput(stdout))
	}
	var metrics *bench.Metrics
	if cfg.MetricsFile != "" {
		metrics = bench.NewMetrics()
		opts = append(opts, bench.WithMetrics(metrics))
	}
	if cfg.Verify {
		db, err := engine.Open(":memory:")
		if err != nil {
			return err
		}
		defer db.Close()
		opts = append(opts, bench.WithVerifier(bench.NewSQLVerifier(db)))
	}

	runner, err := bench.NewRunner(cfg.Config, opts...)
	if err != nil {
		return err
	}
	report, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("benchmark complete",
		zap.Int64("seed", report.Seed),
		zap.Duration("elapsed", report.Elapsed),
	)

	if cfg.Output == "table" {
		if err := report.WriteTable(stdout); err != nil {
			return err
		}
	}
	if metrics != nil {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		logger.Info("metrics written", zap.String("path", cfg.MetricsFile))
	}
	if cfg.HistoryDSN != "" {
		id, err := saveHistory(ctx, cfg.HistoryDSN, report)
		if err != nil {
			return fmt.Errorf("save history: %w", err)
		}
		logger.Info("run recorded", zap.Int64("id", id), zap.String("dsn", cfg.HistoryDSN))
	}
	return nil
}

func saveHistory(ctx context.Context, dsn string, report *bench.Report) (int64, error) {
	db, err := engine.Open(dsn)
	if err != nil {
		return 0, err
	}
	defer db.Close()
	store, err := history.New(ctx, db)
	if err != nil {
		return 0, err
	}
	return store.Save(ctx, toHistoryRun(report))
}

func toHistoryRun(report *bench.Report) *history.Run {
	run := &history.Run{
		StartedAt:       report.StartedAt,
		Elapsed:         report.Elapsed,
		CorpusSize:      report.Config.CorpusSize,
		Dimension:       report.Config.Dimension,
		Repeats:         report.Config.Repeats,
		MaxResults:      report.Config.MaxResults,
		Seed:            report.Seed,
		Kernel:          report.Kernel,
		CacheMagnitudes: report.Config.CacheMagnitudes,
	}
	for _, r := range report.Results {
		run.Results = append(run.Results, history.Result{
			TopK:     r.TopK,
			Average:  r.Average,
			Min:      r.Min,
			Max:      r.Max,
			Returned: r.Returned,
		})
	}
	return run
}

func zapSync(w io.Writer) zapcore.WriteSyncer {
	if ws, ok := w.(zapcore.WriteSyncer); ok {
		return ws
	}
	return zapcore.AddSync(w)
}
