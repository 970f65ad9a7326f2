package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/model/response"
	"taskapp/internal/core/port"
	"taskapp/internal/core/telemetry"
	"taskapp/pkg/errutil"
	"taskapp/pkg/tracing"
)

const passwordConfirmationMismatch = "Password confirmation does not match"

type AuthService struct {
	uow     port.UnitOfWorkProvider
	hasher  port.PasswordHasher
	tokens  port.TokenCodec
	metrics port.Metrics
	logger  *zap.Logger
}

func NewAuthService(
	uow port.UnitOfWorkProvider,
	hasher port.PasswordHasher,
	tokens port.TokenCodec,
	metrics port.Metrics,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		uow:     uow,
		hasher:  hasher,
		tokens:  tokens,
		metrics: metrics,
		logger:  logger,
	}
}

func (s *AuthService) Signup(ctx context.Context, req request.SignupRequest) (*response.SignupResponse, error) {
	var res *response.SignupResponse

	err := tracing.ServiceSpanWrapper(ctx, "auth", "signup", func(ctx context.Context) error {
		if req.Password != req.ConfirmedPassword {
			return domain.BadRequest(passwordConfirmationMismatch)
		}

		uow, err := s.uow.Begin(ctx)
		if err != nil {
			return s.infrastructure("Auth#Signup begin", err)
		}
		defer uow.Rollback(ctx) //nolint:errcheck

		existing, err := uow.Accounts().Select(ctx, req.Account)
		if err != nil {
			return s.infrastructure("Auth#Signup select", err)
		}
		if existing != nil {
			return domain.ErrAccountIDExists
		}

		hash, err := s.hasher.Hash(ctx, req.Password)
		if err != nil {
			return s.infrastructure("Auth#Signup hash", err)
		}

		account, err := uow.Accounts().Insert(ctx, domain.Account{Account: req.Account, Password: hash})
		if errors.Is(err, port.ErrConflict) {
			return domain.ErrAccountIDExists
		}
		if err != nil {
			return s.infrastructure("Auth#Signup insert", err)
		}

		if err := uow.Commit(ctx); err != nil {
			return s.infrastructure("Auth#Signup commit", err)
		}

		res = &response.SignupResponse{Account: account.Account}
		return nil
	})

	s.metrics.RecordAuthOperation(ctx, "signup", telemetry.Outcome(err))
	if err != nil {
		return nil, err
	}

	s.logger.Info("Auth#Signup", zap.String("account", res.Account))

	return res, nil
}

func (s *AuthService) Signin(ctx context.Context, req request.SigninRequest) (*response.SigninResponse, error) {
	var res *response.SigninResponse

	err := tracing.ServiceSpanWrapper(ctx, "auth", "signin", func(ctx context.Context) error {
		uow, err := s.uow.Begin(ctx)
		if err != nil {
			return s.infrastructure("Auth#Signin begin", err)
		}
		defer uow.Rollback(ctx) //nolint:errcheck

		account, err := uow.Accounts().Select(ctx, req.Account)
		if err != nil {
			return s.infrastructure("Auth#Signin select", err)
		}
		if account == nil {
			return domain.ErrUnauthorized
		}

		if !s.hasher.Verify(ctx, req.Password, account.Password) {
			return domain.ErrUnauthorized
		}

		token, err := s.tokens.Issue(account.Account)
		if err != nil {
			return s.infrastructure("Auth#Signin issue", err)
		}

		res = &response.SigninResponse{Token: token}
		return nil
	})

	s.metrics.RecordAuthOperation(ctx, "signin", telemetry.Outcome(err))
	if err != nil {
		return nil, err
	}

	return res, nil
}

// Authenticate resolves a bearer token to the stored account it was issued for.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	var account string

	err := tracing.ServiceSpanWrapper(ctx, "auth", "authenticate", func(ctx context.Context) error {
		claims, err := s.tokens.Verify(token)
		if err != nil {
			s.logger.Debug("Auth#Authenticate verify", zap.Error(err))
			return domain.ErrUnauthorized
		}

		uow, err := s.uow.Begin(ctx)
		if err != nil {
			return s.infrastructure("Auth#Authenticate begin", err)
		}
		defer uow.Rollback(ctx) //nolint:errcheck

		stored, err := uow.Accounts().Select(ctx, claims.Subject)
		if err != nil {
			return s.infrastructure("Auth#Authenticate select", err)
		}
		if stored == nil {
			return domain.ErrUnauthorized
		}

		account = stored.Account
		return nil
	})

	s.metrics.RecordAuthOperation(ctx, "authenticate", telemetry.Outcome(err))
	if err != nil {
		return "", err
	}

	return account, nil
}

func (s *AuthService) infrastructure(msg string, err error) error {
	errutil.LogError(s.logger, msg, err)
	return domain.Infrastructure(err)
}
