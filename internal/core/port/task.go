package port

import (
	"context"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/model/response"
)

type TaskRepository interface {
	Insert(ctx context.Context, task domain.Task) (domain.Task, error)
	// SelectByID returns nil without error when no task has the id.
	SelectByID(ctx context.Context, id int64) (*domain.Task, error)
}

type TaskService interface {
	Create(ctx context.Context, req request.CreateTaskRequest) (*response.TaskDto, error)
	Find(ctx context.Context, id int64) (*response.TaskDto, error)
}
