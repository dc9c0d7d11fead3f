// Package bruteforce provides a vector index that answers top-k queries by
// scoring every corpus vector against the query with cosine similarity and
// sorting the full result. Ties keep corpus order and undefined scores sort
// last, so the ranking is total and never aborts.
package bruteforce
