// Package engine provides helpers for working with the modernc.org/sqlite
// driver in this module: opening connections, registering the vec_cosine
// and vec_l2 scalar functions, and scoring vectors through them.
package engine
