package repository

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/samber/oops"

	"taskapp/internal/adapter/database/sqlite"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
)

type AccountRepository struct {
	tx    *sql.Tx
	qb    sq.StatementBuilderType
	scope *scope
}

func (r *AccountRepository) Insert(ctx context.Context, account domain.Account) (domain.Account, error) {
	if err := r.scope.check(); err != nil {
		return domain.Account{}, err
	}

	query, args, err := r.qb.Insert("accounts").
		Columns("account", "password").
		Values(account.Account, account.Password).
		Suffix("RETURNING account, password").
		ToSql()
	if err != nil {
		return domain.Account{}, oops.Code("ACCOUNT_INSERT_FAILED").Wrap(err)
	}

	var saved domain.Account
	err = r.tx.QueryRowContext(ctx, query, args...).Scan(&saved.Account, &saved.Password)
	if sqlite.IsUniqueViolation(err) {
		return domain.Account{}, oops.Code("ACCOUNT_EXISTS").With("account", account.Account).Wrap(port.ErrConflict)
	}
	if err != nil {
		return domain.Account{}, oops.Code("ACCOUNT_INSERT_FAILED").With("account", account.Account).Wrap(err)
	}

	return saved, nil
}

func (r *AccountRepository) Select(ctx context.Context, account string) (*domain.Account, error) {
	if err := r.scope.check(); err != nil {
		return nil, err
	}

	query, args, err := r.qb.Select("account", "password").
		From("accounts").
		Where(sq.Eq{"account": account}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, oops.Code("ACCOUNT_SELECT_FAILED").Wrap(err)
	}

	var found domain.Account
	err = r.tx.QueryRowContext(ctx, query, args...).Scan(&found.Account, &found.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_SELECT_FAILED").With("account", account).Wrap(err)
	}

	return &found, nil
}
