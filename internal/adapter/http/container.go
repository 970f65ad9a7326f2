package http

import (
	"taskapp/internal/adapter/http/handler"
	"taskapp/internal/core/service"
)

type Container struct {
	Module *service.Module

	AuthHandler *handler.AuthHandler
	TaskHandler *handler.TaskHandler
}

func NewContainer(module *service.Module) *Container {
	return &Container{
		Module:      module,
		AuthHandler: handler.NewAuthHandler(module.Auth),
		TaskHandler: handler.NewTaskHandler(module.Task),
	}
}
