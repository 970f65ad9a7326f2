package port

import (
	"context"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/model/response"
)

type AccountRepository interface {
	Insert(ctx context.Context, account domain.Account) (domain.Account, error)
	// Select returns nil without error when the account does not exist.
	Select(ctx context.Context, account string) (*domain.Account, error)
}

type AuthService interface {
	Signup(ctx context.Context, req request.SignupRequest) (*response.SignupResponse, error)
	Signin(ctx context.Context, req request.SigninRequest) (*response.SigninResponse, error)
	Authenticate(ctx context.Context, token string) (string, error)
}
