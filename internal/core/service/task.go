package service

import (
	"context"

	"go.uber.org/zap"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/model/response"
	"taskapp/internal/core/port"
	"taskapp/internal/core/telemetry"
	"taskapp/pkg/errutil"
	"taskapp/pkg/tracing"
)

type TaskService struct {
	uow     port.UnitOfWorkProvider
	metrics port.Metrics
	logger  *zap.Logger
}

func NewTaskService(uow port.UnitOfWorkProvider, metrics port.Metrics, logger *zap.Logger) *TaskService {
	return &TaskService{uow: uow, metrics: metrics, logger: logger}
}

func (s *TaskService) Create(ctx context.Context, req request.CreateTaskRequest) (*response.TaskDto, error) {
	var res *response.TaskDto

	err := tracing.ServiceSpanWrapper(ctx, "task", "create", func(ctx context.Context) error {
		uow, err := s.uow.Begin(ctx)
		if err != nil {
			return s.infrastructure("Task#Create begin", err)
		}
		defer uow.Rollback(ctx) //nolint:errcheck

		task, err := uow.Tasks().Insert(ctx, domain.Task{
			Account:  req.Account,
			DueDate:  req.DueDate,
			Content:  req.Content,
			Complete: req.Complete,
		})
		if err != nil {
			return s.infrastructure("Task#Create insert", err)
		}

		if err := uow.Commit(ctx); err != nil {
			return s.infrastructure("Task#Create commit", err)
		}

		res = response.NewTaskDto(task)
		return nil
	})

	s.metrics.RecordTaskOperation(ctx, "create", telemetry.Outcome(err))
	if err != nil {
		return nil, err
	}

	return res, nil
}

// Find returns the task with id, or nil when there is none. Any caller may read any task.
func (s *TaskService) Find(ctx context.Context, id int64) (*response.TaskDto, error) {
	var res *response.TaskDto

	err := tracing.ServiceSpanWrapper(ctx, "task", "find", func(ctx context.Context) error {
		uow, err := s.uow.Begin(ctx)
		if err != nil {
			return s.infrastructure("Task#Find begin", err)
		}
		defer uow.Rollback(ctx) //nolint:errcheck

		task, err := uow.Tasks().SelectByID(ctx, id)
		if err != nil {
			return s.infrastructure("Task#Find select", err)
		}

		if err := uow.Commit(ctx); err != nil {
			return s.infrastructure("Task#Find commit", err)
		}

		if task != nil {
			res = response.NewTaskDto(*task)
		}
		return nil
	})

	s.metrics.RecordTaskOperation(ctx, "find", telemetry.Outcome(err))
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (s *TaskService) infrastructure(msg string, err error) error {
	errutil.LogError(s.logger, msg, err)
	return domain.Infrastructure(err)
}
