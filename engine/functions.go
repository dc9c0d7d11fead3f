package engine

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sync"

	sqlite "modernc.org/sqlite"

	"github.com/viant/vecbench/vector"
)

var registerOnce sync.Once

// RegisterVectorFunctions registers vec_cosine and vec_l2 with the driver so
// they are available on new connections opened after this call. Existing
// open connections will not see the functions. Repeated calls are no-ops.
func RegisterVectorFunctions() error {
	var err error
	registerOnce.Do(func() {
		err = errors.Join(
			sqlite.RegisterDeterministicScalarFunction("vec_cosine", 2, vecCosineImpl),
			sqlite.RegisterDeterministicScalarFunction("vec_l2", 2, vecL2Impl),
		)
	})
	return err
}

// CosineScores evaluates vec_cosine(query, v) in SQLite for each vector.
// RegisterVectorFunctions must have been called before db was opened.
func CosineScores(ctx context.Context, db *sql.DB, query []float32, vectors [][]float32) ([]float64, error) {
	if db == nil {
		return nil, fmt.Errorf("engine: db is nil")
	}
	stmt, err := db.PrepareContext(ctx, `SELECT vec_cosine(?, ?)`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	qBlob := vector.EncodeEmbedding(query)
	out := make([]float64, len(vectors))
	for i, v := range vectors {
		if err := stmt.QueryRowContext(ctx, qBlob, vector.EncodeEmbedding(v)).Scan(&out[i]); err != nil {
			return nil, fmt.Errorf("engine: vec_cosine for vector %d: %w", i, err)
		}
	}
	return out, nil
}

func embeddingArgs(name string, args []driver.Value) (a, b []float32, err error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("%s: expected 2 arguments, got %d", name, len(args))
	}
	if a, err = asEmbedding(args[0]); err != nil {
		return nil, nil, err
	}
	if b, err = asEmbedding(args[1]); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func asEmbedding(arg driver.Value) ([]float32, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		return vector.DecodeEmbedding(v)
	default:
		return nil, fmt.Errorf("engine: unsupported argument type %T for embedding; want BLOB", arg)
	}
}

func vecCosineImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	a, b, err := embeddingArgs("vec_cosine", args)
	if err != nil {
		return nil, err
	}
	if a == nil || b == nil {
		return nil, nil
	}
	return vector.CosineSimilarity(a, b)
}

func vecL2Impl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	a, b, err := embeddingArgs("vec_l2", args)
	if err != nil {
		return nil, err
	}
	if a == nil || b == nil {
		return nil, nil
	}
	return vector.L2Distance(a, b)
}
