package vector

import "github.com/viant/vec/search"

func cosineDistance(a []float32, am float32, b []float32, bm float32) float32 {
	return search.Float32s(a).CosineDistanceWithMagnitude(b, am, bm)
}
