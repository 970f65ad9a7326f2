package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
)

type AccountRepository struct {
	tx    pgx.Tx
	qb    sq.StatementBuilderType
	scope *scope
}

func (r *AccountRepository) Insert(ctx context.Context, account domain.Account) (domain.Account, error) {
	if err := r.scope.check(); err != nil {
		return domain.Account{}, err
	}

	query := r.qb.Insert("accounts").
		Columns("account", "password").
		Values(account.Account, account.Password).
		Suffix("RETURNING account, password")

	var saved domain.Account
	err := queryRow(ctx, r.tx, "accounts", "insert", query, &saved.Account, &saved.Password)
	if isUniqueViolation(err) {
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

	query := r.qb.Select("account", "password").
		From("accounts").
		Where(sq.Eq{"account": account}).
		Limit(1)

	var found domain.Account
	err := queryRow(ctx, r.tx, "accounts", "select", query, &found.Account, &found.Password)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_SELECT_FAILED").With("account", account).Wrap(err)
	}

	return &found, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
