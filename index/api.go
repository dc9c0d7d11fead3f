package index

import "errors"

// ErrEmptyCorpus is returned when a query is issued against an index built
// from zero vectors.
var ErrEmptyCorpus = errors.New("index: empty corpus")

// Match is one ranked result. Vector is a copy of the corpus vector at
// Position, so callers may keep or modify it freely.
type Match struct {
	Position int
	Score    float64
	Vector   []float32
}

// Index defines an exact vector index: built once from a corpus, then
// queried for the top-k vectors by cosine similarity.
type Index interface {
	// Build loads the corpus. All vectors must share one dimension.
	Build(vectors [][]float32) error

	// Query returns up to k matches ordered by decreasing score, where
	// higher score means more similar.
	Query(query []float32, k int) ([]Match, error)
}
