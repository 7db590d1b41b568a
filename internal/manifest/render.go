package manifest

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapddl/pkg/ddl"
)

// Result is one compiled statement.
type Result struct {
	Index int    `json:"index"`
	Kind  string `json:"kind"`
	SQL   string `json:"sql"`
}

// RenderOptions controls Render.
type RenderOptions struct {
	// Concurrency bounds the number of statements compiled at once.
	// Zero or less means GOMAXPROCS.
	Concurrency int
	Logger      *slog.Logger
}

// Render compiles statements concurrently and returns the results in input
// order. When several statements fail, the error of the lowest index is
// returned.
func Render(ctx context.Context, stmts []ddl.Statement, opts RenderOptions) ([]Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(stmts))
	errs := make([]error, len(stmts))

	// Compile failures are recorded per index and never stop other statements.
	var g errgroup.Group
	g.SetLimit(limit)

	for i, stmt := range stmts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sql, err := stmt.Compile()
			if err != nil {
				errs[i] = fmt.Errorf("statement %d (%s): %w", i, stmt.Kind(), err)
				return nil
			}
			results[i] = Result{Index: i, Kind: stmt.Kind().String(), SQL: sql}
			logger.Debug("statement compiled", "index", i, "kind", stmt.Kind().String(), "bytes", len(sql))
			return nil
		})
	}

	waitErr := g.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	if waitErr != nil {
		return nil, waitErr
	}

	logger.Debug("render complete", "statements", len(results), "concurrency", limit)
	return results, nil
}
