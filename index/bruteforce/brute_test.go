package bruteforce

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/vecbench/corpus"
	"github.com/viant/vecbench/index"
	"github.com/viant/vecbench/vector"
)

func positions(matches []index.Match) []int {
	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.Position
	}
	return out
}

func TestQuery_Basic(t *testing.T) {
	vectors := [][]float32{{1, 0}, {0, 1}, {1, 1}}

	got, err := Search([]float32{1, 0}, vectors, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, []float32{1, 0}, got[0].Vector)
	assert.InDelta(t, 1.0, got[0].Score, 1e-12)
	assert.Equal(t, []float32{1, 1}, got[1].Vector)
	assert.InDelta(t, math.Sqrt2/2, got[1].Score, 1e-12)
}

func TestQuery_ReturnsClones(t *testing.T) {
	vectors := [][]float32{{1, 0}, {0, 1}}
	got, err := Search([]float32{1, 0}, vectors, 1)
	require.NoError(t, err)

	got[0].Vector[0] = 42
	assert.Equal(t, float32(1), vectors[0][0])
}

func TestQuery_KZero(t *testing.T) {
	got, err := Search([]float32{1, 0}, [][]float32{{1, 0}}, 0)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, err = Search([]float32{1, 0}, [][]float32{{1, 0}}, -3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestQuery_HardCap(t *testing.T) {
	c, err := corpus.NewGenerator(16384, 8, 1).Generate()
	require.NoError(t, err)

	got, err := Search(c[0], c, 1000)
	require.NoError(t, err)
	assert.Len(t, got, DefaultLimit)
	assert.Equal(t, 0, got[0].Position)
}

func TestQuery_ResultLength(t *testing.T) {
	c, err := corpus.NewGenerator(30, 4, 3).Generate()
	require.NoError(t, err)
	idx := New()
	require.NoError(t, idx.Build(c))

	for _, k := range []int{0, 1, 2, 5, 24, 25, 26, 100} {
		got, err := idx.Query(c[0], k)
		require.NoError(t, err)
		assert.Len(t, got, min(k, DefaultLimit, c.Len()), "k=%d", k)
	}

	small := c[:10]
	require.NoError(t, idx.Build(small))
	got, err := idx.Query(c[0], 25)
	require.NoError(t, err)
	assert.Len(t, got, 10)
}

func TestQuery_AllVectorsWhenKExceedsCorpus(t *testing.T) {
	c, err := corpus.NewGenerator(12, 6, 9).Generate()
	require.NoError(t, err)
	query := []float32{1, 2, 3, 4, 5, 6}

	got, err := Search(query, c, 50)
	require.NoError(t, err)
	require.Len(t, got, 12)

	seen := map[int]bool{}
	for r, m := range got {
		seen[m.Position] = true
		want, err := vector.CosineSimilarity(query, c[m.Position])
		require.NoError(t, err)
		assert.InDelta(t, want, m.Score, 1e-12)
		if r > 0 {
			assert.GreaterOrEqual(t, got[r-1].Score, m.Score)
		}
	}
	assert.Len(t, seen, 12)
}

func TestQuery_SortedDescending(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	c, err := corpus.NewGenerator(500, 16, rng.Int63()).Generate()
	require.NoError(t, err)

	for _, kernel := range []vector.Kernel{vector.Float64, vector.Float32} {
		idx := New(WithKernel(kernel), WithLimit(0), WithMagnitudeCache(true))
		require.NoError(t, idx.Build(c))
		got, err := idx.Query(c[rng.Intn(c.Len())], 500)
		require.NoError(t, err)
		require.Len(t, got, 500)
		for r := 1; r < len(got); r++ {
			assert.GreaterOrEqual(t, got[r-1].Score, got[r].Score, kernel.Name())
		}
	}
}

func TestQuery_TiesKeepCorpusOrder(t *testing.T) {
	vectors := [][]float32{{0, 1}, {2, 0}, {1, 0}, {3, 0}, {0, 2}}
	got, err := Search([]float32{1, 0}, vectors, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 0, 4}, positions(got))
}

func TestQuery_ZeroMagnitudeCorpusVectorSortsLast(t *testing.T) {
	vectors := [][]float32{{0, 0}, {-1, 0}, {1, 0}, {0, 0}}
	got, err := Search([]float32{1, 0}, vectors, 10)
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, []int{2, 1, 0, 3}, positions(got))
	assert.True(t, math.IsNaN(got[2].Score))
	assert.True(t, math.IsNaN(got[3].Score))
}

func TestQuery_Errors(t *testing.T) {
	idx := New()
	require.NoError(t, idx.Build(nil))
	_, err := idx.Query([]float32{1}, 1)
	assert.ErrorIs(t, err, index.ErrEmptyCorpus)

	require.NoError(t, idx.Build([][]float32{{1, 2}, {3, 4}}))
	_, err = idx.Query([]float32{1, 2, 3}, 1)
	assert.ErrorIs(t, err, vector.ErrDimensionMismatch)

	_, err = idx.Query([]float32{0, 0}, 1)
	assert.ErrorIs(t, err, vector.ErrScoreUndefined)
}

func TestBuild_InconsistentDimensions(t *testing.T) {
	err := New().Build([][]float32{{1, 2}, {1, 2, 3}})
	require.ErrorIs(t, err, vector.ErrDimensionMismatch)
	assert.Contains(t, err.Error(), "vector 1")
}

func TestBuild_Rebuild(t *testing.T) {
	idx := New()
	require.NoError(t, idx.Build([][]float32{{1, 0}}))
	assert.Equal(t, 1, idx.Len())
	assert.Equal(t, 2, idx.Dimension())

	require.NoError(t, idx.Build(nil))
	assert.Equal(t, 0, idx.Len())
	assert.Equal(t, 0, idx.Dimension())
}

func TestMagnitudeCache_SameResults(t *testing.T) {
	c, err := corpus.NewGenerator(200, 32, 11).Generate()
	require.NoError(t, err)

	cached := New(WithMagnitudeCache(true))
	require.NoError(t, cached.Build(c))
	plain := New()
	require.NoError(t, plain.Build(c))

	a, err := cached.Query(c[3], 25)
	require.NoError(t, err)
	b, err := plain.Query(c[3], 25)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func BenchmarkQuery(b *testing.B) {
	c, err := corpus.NewGenerator(4096, 512, 42).Generate()
	require.NoError(b, err)
	for _, k := range []int{1, 25} {
		for _, kernel := range []vector.Kernel{vector.Float64, vector.Float32} {
			idx := New(WithKernel(kernel))
			require.NoError(b, idx.Build(c))
			b.Run(fmt.Sprintf("%s/k=%d", kernel.Name(), k), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					if _, err := idx.Query(c[0], k); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
