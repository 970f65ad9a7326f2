package request

import "time"

type SignupRequest struct {
	Account           string `json:"account" validate:"required,max=255"`
	Password          string `json:"password" validate:"required,max=255"`
	ConfirmedPassword string `json:"confirmedPassword" validate:"required,max=255"`
}

type SigninRequest struct {
	Account  string `json:"account" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=255"`
}

type CreateTaskRequest struct {
	Account  string    `json:"account" validate:"required,max=255"`
	DueDate  time.Time `json:"dueDate" validate:"required"`
	Content  string    `json:"content" validate:"max=4096"`
	Complete bool      `json:"complete"`
}
