// Package corpus generates the fixed collections of random vectors that the
// benchmark searches. Generation is seedable so runs can be reproduced.
package corpus
