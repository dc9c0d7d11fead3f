package bench

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/viant/vecbench/index"
	"github.com/viant/vecbench/index/bruteforce"
)

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithOutput sets the sink that receives one summary line per k as soon as
// that k completes.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.out = w
		}
	}
}

// WithMetrics records every timed search in m.
func WithMetrics(m *Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithVerifier checks the final result set of each k outside the timed
// region.
func WithVerifier(v Verifier) Option {
	return func(r *Runner) { r.verifier = v }
}

// WithClock replaces time.Now for measuring runs.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// Runner executes the benchmark described by a Config.
type Runner struct {
	cfg      Config
	logger   *zap.Logger
	out      io.Writer
	metrics  *Metrics
	verifier Verifier
	now      func() time.Time
}

// NewRunner validates cfg and returns a Runner.
func NewRunner(cfg Config, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("bench: invalid config: %w", err)
	}
	r := &Runner{
		cfg:    cfg,
		logger: zap.NewNop(),
		out:    io.Discard,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run generates the corpus, times Repeats searches for every configured k
// and returns the report. Selector errors abort the run.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	started := r.now()
	gen := r.cfg.generator()
	vectors, err := gen.Generate()
	if err != nil {
		return nil, fmt.Errorf("bench: generate corpus: %w", err)
	}
	idx := bruteforce.New(r.cfg.indexOptions()...)
	if err := idx.Build(vectors); err != nil {
		return nil, fmt.Errorf("bench: build index: %w", err)
	}
	query := vectors[r.cfg.QueryIndex]

	report := &Report{
		StartedAt: started,
		Config:    r.cfg,
		Seed:      gen.EffectiveSeed(),
		Kernel:    idx.Kernel().Name(),
		Setup:     r.now().Sub(started),
	}
	r.logger.Info("corpus ready",
		zap.Int("vectors", vectors.Len()),
		zap.Int("dimension", vectors.Dimension()),
		zap.Int64("seed", report.Seed),
		zap.String("kernel", report.Kernel),
		zap.Duration("setup", report.Setup),
	)
	if r.metrics != nil {
		r.metrics.SetCorpus(vectors.Len(), vectors.Dimension())
	}

	for _, k := range r.cfg.TopK {
		result, err := r.runTopK(ctx, idx, query, k)
		if err != nil {
			if r.metrics != nil {
				r.metrics.ObserveError(k)
			}
			return nil, err
		}
		report.Results = append(report.Results, *result)
		if _, err := fmt.Fprintln(r.out, result.Line()); err != nil {
			return nil, fmt.Errorf("bench: write result: %w", err)
		}
	}
	report.Elapsed = r.now().Sub(started)
	return report, nil
}

func (r *Runner) runTopK(ctx context.Context, idx index.Index, query []float32, k int) (*Result, error) {
	result := &Result{TopK: k, Runs: make([]time.Duration, 0, r.cfg.Repeats)}
	var matches []index.Match
	for run := 0; run < r.cfg.Repeats; run++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("bench: top_k=%d: %w", k, err)
		}
		start := r.now()
		var err error
		matches, err = idx.Query(query, k)
		elapsed := r.now().Sub(start)
		if err != nil {
			return nil, fmt.Errorf("bench: top_k=%d run %d: %w", k, run, err)
		}
		result.Runs = append(result.Runs, elapsed)
		if r.metrics != nil {
			r.metrics.ObserveSearch(k, elapsed)
		}
	}
	result.summarize()
	result.Returned = len(matches)

	if r.verifier != nil {
		if err := r.verifier.Verify(ctx, query, matches); err != nil {
			return nil, fmt.Errorf("bench: top_k=%d: %w", k, err)
		}
		result.Verified = true
	}
	if r.metrics != nil {
		r.metrics.SetAverage(k, result.Average)
	}
	r.logger.Debug("top_k complete",
		zap.Int("top_k", k),
		zap.Duration("average", result.Average),
		zap.Duration("min", result.Min),
		zap.Duration("max", result.Max),
		zap.Int("returned", result.Returned),
		zap.Bool("verified", result.Verified),
	)
	return result, nil
}
