//go:build !arm64

package vector

import "github.com/viant/vec/search"

// cosineDistance uses the portable implementation; viant/vec exports it
// under the Neon name on non-arm64 targets.
func cosineDistance(a []float32, am float32, b []float32, bm float32) float32 {
	return search.Float32s(a).CosineDistanceWithMagnitudesNeon(b, am, bm)
}
