package corpus

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

const (
	DefaultCount     = 16384
	DefaultDimension = 512
	DefaultMin       = -100000
	DefaultMax       = 100000
)

var ErrInvalidRange = errors.New("corpus: min must be less than max")

// Corpus is an ordered, read-only collection of equal-length vectors. All
// vectors share one backing array.
type Corpus [][]float32

// Len returns the number of vectors.
func (c Corpus) Len() int { return len(c) }

// Dimension returns the length of each vector, or 0 for an empty corpus.
func (c Corpus) Dimension() int {
	if len(c) == 0 {
		return 0
	}
	return len(c[0])
}

// Generator produces a Corpus with components drawn uniformly from
// [Min, Max). A zero Seed selects a time-derived seed.
type Generator struct {
	Count     int
	Dimension int
	Min       float32
	Max       float32
	Seed      int64

	seed int64
}

// NewGenerator returns a Generator with the default range.
func NewGenerator(count, dimension int, seed int64) *Generator {
	return &Generator{
		Count:     count,
		Dimension: dimension,
		Min:       DefaultMin,
		Max:       DefaultMax,
		Seed:      seed,
	}
}

// Validate checks the generator parameters. Negative sizes are rejected;
// zero sizes produce an empty corpus.
func (g *Generator) Validate() error {
	if g.Count < 0 || g.Dimension < 0 {
		return fmt.Errorf("corpus: negative size %dx%d", g.Count, g.Dimension)
	}
	if !(g.Min < g.Max) {
		return fmt.Errorf("%w: [%v, %v)", ErrInvalidRange, g.Min, g.Max)
	}
	// the sampler scales by Max-Min, which must stay finite in float32
	if math.IsInf(float64(g.Max-g.Min), 0) {
		return fmt.Errorf("%w: width of [%v, %v) overflows float32", ErrInvalidRange, g.Min, g.Max)
	}
	return nil
}

// EffectiveSeed returns the seed used by the last Generate call.
func (g *Generator) EffectiveSeed() int64 { return g.seed }

// Generate builds a new corpus.
func (g *Generator) Generate() (Corpus, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	g.seed = g.Seed
	if g.seed == 0 {
		g.seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(g.seed))

	out := make(Corpus, g.Count)
	data := make([]float32, g.Count*g.Dimension)
	span := g.Max - g.Min
	for i := range out {
		vec := data[i*g.Dimension : (i+1)*g.Dimension : (i+1)*g.Dimension]
		for j := range vec {
			vec[j] = uniform(rng, g.Min, span)
		}
		out[i] = vec
	}
	return out, nil
}

// uniform keeps the sample strictly below min+span, which float32 rounding
// of min+f*span can otherwise reach.
func uniform(rng *rand.Rand, lo, span float32) float32 {
	for {
		v := lo + rng.Float32()*span
		if v < lo+span {
			return v
		}
	}
}
