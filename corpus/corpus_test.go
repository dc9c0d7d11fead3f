package corpus

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_ShapeAndRange(t *testing.T) {
	g := NewGenerator(64, 32, 42)
	c, err := g.Generate()
	require.NoError(t, err)

	assert.Equal(t, 64, c.Len())
	assert.Equal(t, 32, c.Dimension())
	for _, v := range c {
		require.Len(t, v, 32)
		for _, x := range v {
			assert.GreaterOrEqual(t, x, float32(DefaultMin))
			assert.Less(t, x, float32(DefaultMax))
		}
	}
}

func TestGenerate_Reproducible(t *testing.T) {
	a, err := NewGenerator(16, 8, 7).Generate()
	require.NoError(t, err)
	b, err := NewGenerator(16, 8, 7).Generate()
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := NewGenerator(16, 8, 8).Generate()
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestGenerate_UnseededReportsSeed(t *testing.T) {
	g := NewGenerator(4, 4, 0)
	first, err := g.Generate()
	require.NoError(t, err)
	require.NotZero(t, g.EffectiveSeed())

	replay, err := NewGenerator(4, 4, g.EffectiveSeed()).Generate()
	require.NoError(t, err)
	assert.Equal(t, first, replay)
}

func TestGenerate_Degenerate(t *testing.T) {
	c, err := NewGenerator(0, 512, 1).Generate()
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.Dimension())

	c, err = NewGenerator(3, 0, 1).Generate()
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 0, c.Dimension())
}

func TestGenerate_VectorsDoNotOverlap(t *testing.T) {
	c, err := NewGenerator(2, 3, 1).Generate()
	require.NoError(t, err)
	c[0] = append(c[0], 1)
	assert.Len(t, c[1], 3)
	assert.NotEqual(t, float32(1), c[1][0])
}

func TestValidate(t *testing.T) {
	g := NewGenerator(1, 1, 1)
	g.Min, g.Max = 5, 5
	assert.ErrorIs(t, g.Validate(), ErrInvalidRange)

	g = NewGenerator(-1, 1, 1)
	assert.Error(t, g.Validate())
}

func TestValidate_OverflowingRange(t *testing.T) {
	g := NewGenerator(1, 4, 1)
	g.Min, g.Max = -3e38, 3e38
	assert.ErrorIs(t, g.Validate(), ErrInvalidRange)

	g.Min, g.Max = float32(math.Inf(-1)), 0
	assert.ErrorIs(t, g.Validate(), ErrInvalidRange)
}

func TestGenerate_OverflowingRangeReturns(t *testing.T) {
	g := NewGenerator(1, 4, 1)
	g.Min, g.Max = -3e38, 3e38

	done := make(chan error, 1)
	go func() {
		_, err := g.Generate()
		done <- err
	}()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrInvalidRange)
	case <-time.After(3 * time.Second):
		t.Fatal("Generate did not return")
	}
}

func TestGenerate_WideFiniteRange(t *testing.T) {
	g := NewGenerator(10, 8, 3)
	g.Min, g.Max = -1e38, 1e38
	c, err := g.Generate()
	require.NoError(t, err)
	for _, v := range c {
		for _, x := range v {
			assert.GreaterOrEqual(t, x, g.Min)
			assert.Less(t, x, g.Max)
		}
	}
}
