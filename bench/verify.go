package bench

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/viant/vecbench/engine"
	"github.com/viant/vecbench/index"
)

// ErrVerification reports a result set that disagrees with the reference
// scorer.
var ErrVerification = errors.New("bench: verification failed")

// DefaultTolerance bounds the absolute score difference accepted by
// SQLVerifier. It covers the float32 kernel.
const DefaultTolerance = 1e-4

// Verifier checks a result set produced for query.
type Verifier interface {
	Verify(ctx context.Context, query []float32, matches []index.Match) error
}

// SQLVerifier recomputes scores with the SQLite vec_cosine function. The
// database must have been opened after engine.RegisterVectorFunctions.
type SQLVerifier struct {
	db        *sql.DB
	Tolerance float64
}

// NewSQLVerifier returns a verifier using db.
func NewSQLVerifier(db *sql.DB) *SQLVerifier {
	return &SQLVerifier{db: db, Tolerance: DefaultTolerance}
}

// Verify checks that every defined score matches vec_cosine within
// Tolerance and that scores never increase down the list. Undefined (NaN)
// scores must come last.
func (v *SQLVerifier) Verify(ctx context.Context, query []float32, matches []index.Match) error {
	defined := make([][]float32, 0, len(matches))
	for i, m := range matches {
		if math.IsNaN(m.Score) {
			for _, rest := range matches[i:] {
				if !math.IsNaN(rest.Score) {
					return fmt.Errorf("%w: defined score after undefined at position %d", ErrVerification, rest.Position)
				}
			}
			break
		}
		if i > 0 && m.Score > matches[i-1].Score {
			return fmt.Errorf("%w: rank %d score %v exceeds rank %d score %v", ErrVerification, i, m.Score, i-1, matches[i-1].Score)
		}
		defined = append(defined, m.Vector)
	}
	if len(defined) == 0 {
		return nil
	}
	want, err := engine.CosineScores(ctx, v.db, query, defined)
	if err != nil {
		return err
	}
	for i, w := range want {
		if diff := math.Abs(w - matches[i].Score); diff > v.Tolerance {
			return fmt.Errorf("%w: rank %d (position %d) score %v, vec_cosine %v", ErrVerification, i, matches[i].Position, matches[i].Score, w)
		}
	}
	return nil
}
