package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"taskapp/internal/adapter/http/helper"
	"taskapp/internal/core/port"
)

const accountKey = "account"

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireAuth rejects the request with 401 unless it carries a bearer token
// for an existing account.
func RequireAuth(auth port.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			helper.SendUnauthorizedError(c)
			return
		}

		account, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			helper.SendUnauthorizedError(c)
			return
		}

		c.Set(accountKey, account)
		c.Next()
	}
}

// OptionalAuth resolves the bearer token when present. Failures leave the
// request anonymous.
func OptionalAuth(auth port.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if account, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(accountKey, account)
			}
		}

		c.Next()
	}
}

// CurrentAccount returns the account resolved by one of the auth guards.
func CurrentAccount(c *gin.Context) (string, bool) {
	account := c.GetString(accountKey)
	return account, account != ""
}
