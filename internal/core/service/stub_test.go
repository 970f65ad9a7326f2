package service_test

import (
	"context"
	"errors"

	"github.com/samber/oops"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
)

// stubProvider hands out a single scripted unit of work.
type stubProvider struct {
	uow      *stubUnitOfWork
	beginErr error
	begun    int
}

func (p *stubProvider) Begin(context.Context) (port.UnitOfWork, error) {
	p.begun++
	if p.beginErr != nil {
		return nil, p.beginErr
	}
	return p.uow, nil
}

type stubUnitOfWork struct {
	accounts   stubAccounts
	tasks      stubTasks
	commitErr  error
	committed  bool
	rolledBack bool
}

func (u *stubUnitOfWork) Accounts() port.AccountRepository { return &u.accounts }
func (u *stubUnitOfWork) Tasks() port.TaskRepository       { return &u.tasks }

func (u *stubUnitOfWork) Commit(context.Context) error {
	if u.committed || u.rolledBack {
		return port.ErrUnitOfWorkDone
	}
	u.committed = true
	return u.commitErr
}

func (u *stubUnitOfWork) Rollback(context.Context) error {
	if u.committed || u.rolledBack {
		return nil
	}
	u.rolledBack = true
	return nil
}

type stubAccounts struct {
	selected  *domain.Account
	selectErr error
	insertErr error
	inserted  []domain.Account
}

func (a *stubAccounts) Insert(_ context.Context, account domain.Account) (domain.Account, error) {
	if a.insertErr != nil {
		return domain.Account{}, a.insertErr
	}
	a.inserted = append(a.inserted, account)
	return account, nil
}

func (a *stubAccounts) Select(context.Context, string) (*domain.Account, error) {
	return a.selected, a.selectErr
}

type stubTasks struct {
	err error
}

func (t *stubTasks) Insert(_ context.Context, task domain.Task) (domain.Task, error) {
	task.ID = 1
	return task, t.err
}

func (t *stubTasks) SelectByID(context.Context, int64) (*domain.Task, error) {
	return nil, t.err
}

var (
	errConnectionRefused = errors.New("connection refused")
	errConflict          = oops.Code("ACCOUNT_EXISTS").With("account", "alice").Wrap(port.ErrConflict)
)
