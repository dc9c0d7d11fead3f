package vector

import (
	"fmt"
	"strings"

	"github.com/viant/vec/search"
)

// Kernel scores vectors for an index. Magnitudes are passed in so that an
// index may cache them; Cosine is only called with nonzero magnitudes and
// vectors of equal length.
type Kernel interface {
	Name() string
	Magnitude(v []float32) float64
	Cosine(a []float32, am float64, b []float32, bm float64) float64
}

const (
	Float64KernelName = "float64"
	Float32KernelName = "float32"
)

// Float64 accumulates in double precision.
var Float64 Kernel = float64Kernel{}

// Float32 computes in single precision using viant/vec.
var Float32 Kernel = float32Kernel{}

// KernelByName resolves a kernel from its name or short alias (f64, f32).
func KernelByName(name string) (Kernel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", Float64KernelName, "f64":
		return Float64, nil
	case Float32KernelName, "f32":
		return Float32, nil
	}
	return nil, fmt.Errorf("vector: unknown kernel %q", name)
}

type float64Kernel struct{}

func (float64Kernel) Name() string                  { return Float64KernelName }
func (float64Kernel) Magnitude(v []float32) float64 { return Magnitude(v) }
func (float64Kernel) Cosine(a []float32, am float64, b []float32, bm float64) float64 {
	return DotProduct(a, b) / (am * bm)
}

type float32Kernel struct{}

func (float32Kernel) Name() string { return Float32KernelName }

func (float32Kernel) Magnitude(v []float32) float64 {
	return float64(search.Float32s(v).Magnitude())
}

func (float32Kernel) Cosine(a []float32, am float64, b []float32, bm float64) float64 {
	return float64(1 - cosineDistance(a, float32(am), b, float32(bm)))
}
