package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"taskapp/internal/adapter/database/postgres"
	"taskapp/internal/core/port"
)

const dbSystem = "postgresql"

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
	db *postgres.DB
}

func NewUnitOfWorkProvider(db *postgres.DB) *UnitOfWorkProvider {
	return &UnitOfWorkProvider{db: db}
}

func (p *UnitOfWorkProvider) Begin(ctx context.Context) (port.UnitOfWork, error) {
	tx, err := p.db.Pool.Begin(ctx)
	if err != nil {
		return nil, oops.Code("UOW_BEGIN_FAILED").With("driver", "postgres").Wrap(err)
	}

	s := &scope{}
	qb := *p.db.QueryBuilder

	return &UnitOfWork{
		tx:       tx,
		scope:    s,
		accounts: &AccountRepository{tx: tx, qb: qb, scope: s},
		tasks:    &TaskRepository{tx: tx, qb: qb, scope: s},
	}, nil
}

type UnitOfWork struct {
	tx       pgx.Tx
	scope    *scope
	accounts *AccountRepository
	tasks    *TaskRepository
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

	if err := u.tx.Commit(ctx); err != nil {
		return oops.Code("UOW_COMMIT_FAILED").With("driver", "postgres").Wrap(err)
	}

	return nil
}

// Rollback is a no-op on a finished unit of work.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.scope.finished {
		return nil
	}
	u.scope.finished = true

	if err := u.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return oops.Code("UOW_ROLLBACK_FAILED").With("driver", "postgres").Wrap(err)
	}

	return nil
}

func queryRow(ctx context.Context, tx pgx.Tx, table, operation string, builder sq.Sqlizer, dest ...any) error {
	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	return withSpan(ctx, table, operation, func(ctx context.Context) error {
		return tx.QueryRow(ctx, query, args...).Scan(dest...)
	})
}
