package repository

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/samber/oops"

	"taskapp/internal/adapter/database/sqlite"
	"taskapp/internal/core/port"
)

// scope is shared by a unit of work and the repositories it hands out.
type scope struct {
	finished bool
}

func (s *scope) check() error {
	if s.finished {
		return port.ErrUnitOfWorkDone
	}
	return nil
}

type UnitOfWorkProvider struct {
	db *sqlite.DB
}

func NewUnitOfWorkProvider(db *sqlite.DB) *UnitOfWorkProvider {
	return &UnitOfWorkProvider{db: db}
}

func (p *UnitOfWorkProvider) Begin(ctx context.Context) (port.UnitOfWork, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, oops.Code("UOW_BEGIN_FAILED").With("driver", "sqlite").Wrap(err)
	}

	return newUnitOfWork(tx, *p.db.QueryBuilder), nil
}

type UnitOfWork struct {
	tx       *sql.Tx
	scope    *scope
	accounts *AccountRepository
	tasks    *TaskRepository
}

func newUnitOfWork(tx *sql.Tx, qb sq.StatementBuilderType) *UnitOfWork {
	s := &scope{}

	return &UnitOfWork{
		tx:       tx,
		scope:    s,
		accounts: &AccountRepository{tx: tx, qb: qb, scope: s},
		tasks:    &TaskRepository{tx: tx, qb: qb, scope: s},
	}
}

func (u *UnitOfWork) Accounts() port.AccountRepository {
	return u.accounts
}

func (u *UnitOfWork) Tasks() port.TaskRepository {
	return u.tasks
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if err := u.scope.check(); err != nil {
		return err
	}
	u.scope.finished = true

	if err := u.tx.Commit(); err != nil {
		return oops.Code("UOW_COMMIT_FAILED").With("driver", "sqlite").Wrap(err)
	}

	return nil
}

// Rollback discards the transaction. It is a no-op once the unit of work has
// been committed or rolled back, so it can always be deferred.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.scope.finished {
		return nil
	}
	u.scope.finished = true

	if err := u.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return oops.Code("UOW_ROLLBACK_FAILED").With("driver", "sqlite").Wrap(err)
	}

	return nil
}
