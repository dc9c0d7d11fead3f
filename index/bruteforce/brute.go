package bruteforce

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/viant/vecbench/index"
	"github.com/viant/vecbench/vector"
)

// DefaultLimit caps the number of matches a query returns regardless of k.
const DefaultLimit = 25

// Option configures an Index.
type Option func(*Index)

// WithKernel selects the scoring kernel. The default is vector.Float64.
func WithKernel(k vector.Kernel) Option {
	return func(i *Index) {
		if k != nil {
			i.kernel = k
		}
	}
}

// WithLimit overrides DefaultLimit. A limit <= 0 disables the cap.
func WithLimit(limit int) Option {
	return func(i *Index) { i.limit = limit }
}

// WithMagnitudeCache precomputes corpus magnitudes at Build time. When
// disabled every query recomputes them.
func WithMagnitudeCache(enabled bool) Option {
	return func(i *Index) { i.cacheMags = enabled }
}

// Index is a brute-force vector index implementing cosine similarity.
type Index struct {
	vecs      [][]float32
	dim       int
	mags      []float64
	kernel    vector.Kernel
	limit     int
	cacheMags bool
}

var _ index.Index = (*Index)(nil)

// New creates an empty index.
func New(opts ...Option) *Index {
	i := &Index{kernel: vector.Float64, limit: DefaultLimit}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Search builds a throwaway index over vectors and queries it once.
func Search(query []float32, vectors [][]float32, k int, opts ...Option) ([]index.Match, error) {
	i := New(opts...)
	if err := i.Build(vectors); err != nil {
		return nil, err
	}
	return i.Query(query, k)
}

// Len returns the number of indexed vectors.
func (i *Index) Len() int { return len(i.vecs) }

// Dimension returns the indexed dimension, or 0 when empty.
func (i *Index) Dimension() int { return i.dim }

// Kernel returns the scoring kernel in use.
func (i *Index) Kernel() vector.Kernel { return i.kernel }

// Build loads vectors, keeping references to them. The caller must not
// modify the vectors while the index is in use.
func (i *Index) Build(vectors [][]float32) error {
	if i.kernel == nil {
		i.kernel = vector.Float64
	}
	if len(vectors) == 0 {
		i.vecs, i.mags, i.dim = nil, nil, 0
		return nil
	}
	dim := len(vectors[0])
	for j := range vectors {
		if len(vectors[j]) != dim {
			return fmt.Errorf("bruteforce: vector %d: %w: %d vs %d", j, vector.ErrDimensionMismatch, len(vectors[j]), dim)
		}
	}
	i.vecs = append([][]float32(nil), vectors...)
	i.dim = dim
	i.mags = nil
	if i.cacheMags {
		i.mags = make([]float64, len(vectors))
		for j := range vectors {
			i.mags[j] = i.kernel.Magnitude(vectors[j])
		}
	}
	return nil
}

type scored struct {
	idx   int
	score float64
}

// Query returns the top-k vectors by cosine similarity, at most the
// configured limit. A zero-magnitude corpus vector scores NaN and ranks
// after every defined score.
func (i *Index) Query(query []float32, k int) ([]index.Match, error) {
	if len(i.vecs) == 0 {
		return nil, index.ErrEmptyCorpus
	}
	if len(query) != i.dim {
		return nil, fmt.Errorf("bruteforce: query: %w: %d vs %d", vector.ErrDimensionMismatch, len(query), i.dim)
	}
	if k <= 0 {
		return []index.Match{}, nil
	}
	qm := i.kernel.Magnitude(query)
	if qm == 0 {
		return nil, fmt.Errorf("bruteforce: query: %w", vector.ErrScoreUndefined)
	}

	scoreds := make([]scored, len(i.vecs))
	for j, v := range i.vecs {
		var m float64
		if i.mags != nil {
			m = i.mags[j]
		} else {
			m = i.kernel.Magnitude(v)
		}
		s := math.NaN()
		if m != 0 {
			s = i.kernel.Cosine(query, qm, v, m)
		}
		scoreds[j] = scored{idx: j, score: s}
	}
	sort.Slice(scoreds, func(a, b int) bool { return ranksBefore(scoreds[a], scoreds[b]) })

	n := k
	if i.limit > 0 && n > i.limit {
		n = i.limit
	}
	if n > len(scoreds) {
		n = len(scoreds)
	}
	out := make([]index.Match, n)
	for r := 0; r < n; r++ {
		out[r] = index.Match{
			Position: scoreds[r].idx,
			Score:    scoreds[r].score,
			Vector:   slices.Clone(i.vecs[scoreds[r].idx]),
		}
	}
	return out, nil
}

// ranksBefore orders by descending score, NaN last, then by corpus position.
func ranksBefore(a, b scored) bool {
	an, bn := math.IsNaN(a.score), math.IsNaN(b.score)
	if an != bn {
		return bn
	}
	if an || a.score == b.score {
		return a.idx < b.idx
	}
	return a.score > b.score
}
