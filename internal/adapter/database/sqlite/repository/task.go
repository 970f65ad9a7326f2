package repository

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/samber/oops"

	"taskapp/internal/adapter/database/sqlite"
	"taskapp/internal/core/domain"
)

var taskColumns = []string{"id", "account", "due_date", "content", "complete"}

type TaskRepository struct {
	tx    *sql.Tx
	qb    sq.StatementBuilderType
	scope *scope
}

// Insert stores task and returns the row as written. task.ID is ignored.
func (r *TaskRepository) Insert(ctx context.Context, task domain.Task) (domain.Task, error) {
	if err := r.scope.check(); err != nil {
		return domain.Task{}, err
	}

	query, args, err := r.qb.Insert("tasks").
		Columns("account", "due_date", "content", "complete").
		Values(task.Account, sqlite.Timestamp{Time: task.DueDate}, task.Content, task.Complete).
		Suffix("RETURNING id, account, due_date, content, complete").
		ToSql()
	if err != nil {
		return domain.Task{}, oops.Code("TASK_INSERT_FAILED").Wrap(err)
	}

	saved, err := scanTask(r.tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		return domain.Task{}, oops.Code("TASK_INSERT_FAILED").With("account", task.Account).Wrap(err)
	}

	return saved, nil
}

func (r *TaskRepository) SelectByID(ctx context.Context, id int64) (*domain.Task, error) {
	if err := r.scope.check(); err != nil {
		return nil, err
	}

	query, args, err := r.qb.Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, oops.Code("TASK_SELECT_FAILED").Wrap(err)
	}

	task, err := scanTask(r.tx.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, oops.Code("TASK_SELECT_FAILED").With("id", id).Wrap(err)
	}

	return &task, nil
}

func scanTask(row *sql.Row) (domain.Task, error) {
	var (
		task    domain.Task
		dueDate sqlite.Timestamp
	)

	if err := row.Scan(&task.ID, &task.Account, &dueDate, &task.Content, &task.Complete); err != nil {
		return domain.Task{}, err
	}
	task.DueDate = dueDate.Time

	return task, nil
}
