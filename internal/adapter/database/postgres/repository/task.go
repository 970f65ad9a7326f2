package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"taskapp/internal/core/domain"
)

type TaskRepository struct {
	tx    pgx.Tx
	qb    sq.StatementBuilderType
	scope *scope
}

func (r *TaskRepository) Insert(ctx context.Context, task domain.Task) (domain.Task, error) {
	if err := r.scope.check(); err != nil {
		return domain.Task{}, err
	}

	query := r.qb.Insert("tasks").
		Columns("account", "due_date", "content", "complete").
		Values(task.Account, task.DueDate.UTC(), task.Content, task.Complete).
		Suffix("RETURNING id, account, due_date, content, complete")

	var saved domain.Task
	err := queryRow(ctx, r.tx, "tasks", "insert", query,
		&saved.ID, &saved.Account, &saved.DueDate, &saved.Content, &saved.Complete)
	if err != nil {
		return domain.Task{}, oops.Code("TASK_INSERT_FAILED").With("account", task.Account).Wrap(err)
	}
	saved.DueDate = saved.DueDate.UTC()

	return saved, nil
}

func (r *TaskRepository) SelectByID(ctx context.Context, id int64) (*domain.Task, error) {
	if err := r.scope.check(); err != nil {
		return nil, err
	}

	query := r.qb.Select("id", "account", "due_date", "content", "complete").
		From("tasks").
		Where(sq.Eq{"id": id}).
		Limit(1)

	var found domain.Task
	err := queryRow(ctx, r.tx, "tasks", "select", query,
		&found.ID, &found.Account, &found.DueDate, &found.Content, &found.Complete)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, oops.Code("TASK_SELECT_FAILED").With("id", id).Wrap(err)
	}
	found.DueDate = found.DueDate.UTC()

	return &found, nil
}
