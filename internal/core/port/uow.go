package port

import (
	"context"
	"errors"
)

// ErrUnitOfWorkDone is returned by repository handles, and by Commit, once the
// unit of work has been committed or rolled back.
var ErrUnitOfWorkDone = errors.New("unit of work already finished")

// ErrConflict marks an insert rejected by a uniqueness constraint.
var ErrConflict = errors.New("conflict")

// UnitOfWork owns a single database transaction. Repository handles it hands
// out execute inside that transaction and stop working once it is finished.
//
// Commit finishes the unit of work whatever its outcome. Rollback on a
// finished unit of work is a no-op, so callers defer it right after Begin to
// guarantee an abandoned transaction is released.
type UnitOfWork interface {
	Accounts() AccountRepository
	Tasks() TaskRepository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type UnitOfWorkProvider interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}
