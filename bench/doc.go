// Package bench drives the similarity search benchmark: it generates a
// random corpus, repeats a brute-force top-k search for each configured k,
// and reports the mean wall-clock latency per k.
//
// The default Config searches 16384 vectors of 512 dimensions for k in
// {1, 2, 5, 25}, 10 runs each, with results written as
//
//	Average time for top_k = 5: 10371612 ns
package bench
