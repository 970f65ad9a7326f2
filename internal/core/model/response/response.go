package response

import (
	"time"

	"taskapp/internal/core/domain"
)

type SignupResponse struct {
	Account string `json:"account"`
}

type SigninResponse struct {
	Token string `json:"token"`
}

type TaskDto struct {
	ID       int64     `json:"id"`
	Account  string    `json:"account"`
	DueDate  time.Time `json:"dueDate"`
	Content  string    `json:"content"`
	Complete bool      `json:"complete"`
}

func NewTaskDto(task domain.Task) *TaskDto {
	return &TaskDto{
		ID:       task.ID,
		Account:  task.Account,
		DueDate:  task.DueDate,
		Content:  task.Content,
		Complete: task.Complete,
	}
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string            `json:"error"`
	Details []ValidationError `json:"details,omitempty"`
}
