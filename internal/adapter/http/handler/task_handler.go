package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	. "taskapp/internal/adapter/http/helper"
	"taskapp/internal/adapter/http/middleware"
	. "taskapp/internal/adapter/http/validation"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/port"
)

type TaskHandler struct {
	svc port.TaskService
}

func NewTaskHandler(svc port.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// Create stores a task. The account defaults to the authenticated one when the
// body leaves it out.
func (h *TaskHandler) Create(c *gin.Context) {
	params, err := ParamsToMap[request.CreateTaskRequest](c)

	if err != nil {
		SendBadRequestError(c, "Invalid request body")
		return
	}

	if params.Account == "" {
		params.Account, _ = middleware.CurrentAccount(c)
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	task, err := h.svc.Create(c.Request.Context(), params)

	if err != nil {
		SendUseCaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Find writes the task or a JSON null when there is none.
func (h *TaskHandler) Find(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)

	if err != nil {
		SendBadRequestError(c, "Invalid task id")
		return
	}

	task, err := h.svc.Find(c.Request.Context(), id)

	if err != nil {
		SendUseCaseError(c, err)
		return
	}

	if task == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, task)
}
