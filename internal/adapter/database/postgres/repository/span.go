package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"taskapp/pkg/tracing"
)

// withSpan runs a statement inside a span. A missing row is not a span error.
func withSpan(ctx context.Context, table, operation string, fn func(context.Context) error) error {
	var noRows bool

	err := tracing.DatabaseSpanWrapper(ctx, dbSystem, table, operation, func(ctx context.Context) error {
		err := fn(ctx)
		if errors.Is(err, pgx.ErrNoRows) {
			noRows = true
			return nil
		}
		return err
	})
	if noRows {
		return pgx.ErrNoRows
	}

	return err
}
