package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	. "taskapp/internal/adapter/http/helper"
	. "taskapp/internal/adapter/http/validation"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/port"
)

type AuthHandler struct {
	svc port.AuthService
}

func NewAuthHandler(svc port.AuthService) *AuthHandler {
	return &AuthHandler{
		svc: svc,
	}
}

func (a *AuthHandler) Signup(c *gin.Context) {
	params, err := ParamsToMap[request.SignupRequest](c)

	if err != nil {
		SendBadRequestError(c, "Invalid request body")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	res, err := a.svc.Signup(c.Request.Context(), params)

	if err != nil {
		SendUseCaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (a *AuthHandler) Signin(c *gin.Context) {
	params, err := ParamsToMap[request.SigninRequest](c)

	if err != nil {
		SendBadRequestError(c, "Invalid request body")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	res, err := a.svc.Signin(c.Request.Context(), params)

	if err != nil {
		SendUseCaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
