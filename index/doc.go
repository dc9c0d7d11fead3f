// Package index defines a minimal abstraction for exact vector indexes that
// are built from a corpus and queried for the top-k most similar vectors.
// The brute-force implementation lives in the bruteforce subpackage.
package index
