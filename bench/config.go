package bench

import (
	"errors"
	"fmt"

	"github.com/viant/vecbench/corpus"
	"github.com/viant/vecbench/index/bruteforce"
	"github.com/viant/vecbench/vector"
)

// Config validation errors
var (
	ErrInvalidCorpusSize = errors.New("corpus_size must be positive")
	ErrInvalidDimension  = errors.New("dimension must be positive")
	ErrNoTopK            = errors.New("top_k must list at least one value")
	ErrInvalidTopK       = errors.New("top_k values must not be negative")
	ErrDuplicateTopK     = errors.New("top_k values must be unique")
	ErrInvalidRepeats    = errors.New("repeats must be positive")
	ErrInvalidQueryIndex = errors.New("query_index must address a corpus vector")
	ErrInvalidKernel     = errors.New("kernel must be float64 or float32")
)

// Config holds the benchmark parameters. Field tags allow loading with
// envconfig.
type Config struct {
	CorpusSize int   `envconfig:"CORPUS_SIZE" default:"16384"`
	Dimension  int   `envconfig:"DIMENSION" default:"512"`
	TopK       []int `envconfig:"TOP_K" default:"1,2,5,25"`
	Repeats    int   `envconfig:"REPEATS" default:"10"`
	// MaxResults caps every result set; <= 0 disables the cap.
	MaxResults int `envconfig:"MAX_RESULTS" default:"25"`
	// Seed 0 picks a time-derived seed, reported in Report.Seed.
	Seed       int64   `envconfig:"SEED" default:"0"`
	QueryIndex int     `envconfig:"QUERY_INDEX" default:"0"`
	Min        float32 `envconfig:"MIN" default:"-100000"`
	Max        float32 `envconfig:"MAX" default:"100000"`
	Kernel     string  `envconfig:"KERNEL" default:"float64"`
	// CacheMagnitudes moves corpus norm computation out of the timed search.
	CacheMagnitudes bool `envconfig:"CACHE_MAGNITUDES" default:"false"`
	// Verify cross-checks each k's results against SQLite vec_cosine.
	Verify bool `envconfig:"VERIFY" default:"false"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		CorpusSize: corpus.DefaultCount,
		Dimension:  corpus.DefaultDimension,
		TopK:       []int{1, 2, 5, 25},
		Repeats:    10,
		MaxResults: bruteforce.DefaultLimit,
		Min:        corpus.DefaultMin,
		Max:        corpus.DefaultMax,
		Kernel:     vector.Float64KernelName,
	}
}

// Validate returns the first problem found in cfg.
func (cfg *Config) Validate() error {
	if cfg.CorpusSize <= 0 {
		return ErrInvalidCorpusSize
	}
	if cfg.Dimension <= 0 {
		return ErrInvalidDimension
	}
	if len(cfg.TopK) == 0 {
		return ErrNoTopK
	}
	seen := make(map[int]bool, len(cfg.TopK))
	for _, k := range cfg.TopK {
		if k < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidTopK, k)
		}
		if seen[k] {
			return fmt.Errorf("%w: %d", ErrDuplicateTopK, k)
		}
		seen[k] = true
	}
	if cfg.Repeats <= 0 {
		return ErrInvalidRepeats
	}
	if cfg.QueryIndex < 0 || cfg.QueryIndex >= cfg.CorpusSize {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidQueryIndex, cfg.QueryIndex, cfg.CorpusSize)
	}
	if err := cfg.generator().Validate(); err != nil {
		return err
	}
	if _, err := vector.KernelByName(cfg.Kernel); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidKernel, cfg.Kernel)
	}
	return nil
}

func (cfg *Config) generator() *corpus.Generator {
	g := corpus.NewGenerator(cfg.CorpusSize, cfg.Dimension, cfg.Seed)
	g.Min, g.Max = cfg.Min, cfg.Max
	return g
}

func (cfg *Config) indexOptions() []bruteforce.Option {
	kernel, _ := vector.KernelByName(cfg.Kernel)
	return []bruteforce.Option{
		bruteforce.WithKernel(kernel),
		bruteforce.WithLimit(cfg.MaxResults),
		bruteforce.WithMagnitudeCache(cfg.CacheMagnitudes),
	}
}
