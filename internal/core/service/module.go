package service

import (
	"go.uber.org/zap"

	"taskapp/internal/core/port"
)

// Module holds the use cases shared by every request. It is built once at
// start-up and never mutated.
type Module struct {
	Auth port.AuthService
	Task port.TaskService
}

func NewModule(
	uow port.UnitOfWorkProvider,
	hasher port.PasswordHasher,
	tokens port.TokenCodec,
	metrics port.Metrics,
	logger *zap.Logger,
) *Module {
	return &Module{
		Auth: NewAuthService(uow, hasher, tokens, metrics, logger),
		Task: NewTaskService(uow, metrics, logger),
	}
}
