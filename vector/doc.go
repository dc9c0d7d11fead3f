// Package vector holds the numeric building blocks used by this project:
//   - cosine similarity, dot product, magnitude and L2 distance
//   - scoring kernels (float64 and float32 arithmetic) used by indexes
//   - embedding encoding (BLOB) for SQLite scalar functions
package vector
