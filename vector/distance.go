package vector

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDimensionMismatch is returned when two vectors that must share a
	// dimension do not.
	ErrDimensionMismatch = errors.New("vector: dimension mismatch")

	// ErrScoreUndefined is returned when cosine similarity is undefined
	// because a vector has zero magnitude.
	ErrScoreUndefined = errors.New("vector: score undefined for zero-magnitude vector")
)

// CosineSimilarity computes the cosine similarity between two vectors. It
// returns ErrDimensionMismatch if the vectors have different lengths and
// ErrScoreUndefined if either vector has zero magnitude (empty vectors
// included).
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	var dot, na2, nb2 float64
	for i := range a {
		va := float64(a[i])
		vb := float64(b[i])
		dot += va * vb
		na2 += va * va
		nb2 += vb * vb
	}
	if na2 == 0 || nb2 == 0 {
		return 0, ErrScoreUndefined
	}
	return dot / (math.Sqrt(na2) * math.Sqrt(nb2)), nil
}

// DotProduct returns the sum of elementwise products. Callers must ensure
// the vectors share a dimension.
func DotProduct(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}

// Magnitude returns the Euclidean norm of v.
func Magnitude(v []float32) float64 { return math.Sqrt(DotProduct(v, v)) }

// L2Distance computes the Euclidean (L2) distance between two vectors. It
// returns ErrDimensionMismatch if the vectors have different lengths.
func L2Distance(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum), nil
}
