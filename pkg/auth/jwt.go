package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Leeway is the clock skew tolerated when validating exp and iat.
const Leeway = 30 * time.Second

var (
	ErrEmptySecret  = errors.New("jwt secret must not be empty")
	ErrInvalidToken = errors.New("invalid access token")
)

// Claims is the payload carried by every access token.
type Claims struct {
	Subject   string `json:"sub"`
	Issuer    string `json:"iss"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
	ID        string `json:"jti"`
}

// NewClaims builds claims for subject valid for expire seconds from now.
func NewClaims(subject, issuer string, expire int64) Claims {
	now := time.Now().Unix()

	return Claims{
		Subject:   subject,
		Issuer:    issuer,
		IssuedAt:  now,
		ExpiresAt: now + expire,
		ID:        uuid.NewString(),
	}
}

func (c Claims) GetExpirationTime() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.ExpiresAt, 0)), nil
}

func (c Claims) GetIssuedAt() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.IssuedAt, 0)), nil
}

func (c Claims) GetNotBefore() (*jwt.NumericDate, error) {
	return nil, nil
}

func (c Claims) GetIssuer() (string, error) {
	return c.Issuer, nil
}

func (c Claims) GetSubject() (string, error) {
	return c.Subject, nil
}

func (c Claims) GetAudience() (jwt.ClaimStrings, error) {
	return nil, nil
}

// Encode signs claims with HS256.
func Encode(claims Claims, secret string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret))
}

// Decode verifies the signature, exp (with Leeway) and issuer of token.
func Decode(token, issuer, secret string) (*Claims, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithLeeway(Leeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// JWT issues and verifies tokens for a single issuer and secret.
type JWT struct {
	Issuer string
	Secret string
	// Expire is the token lifetime in seconds.
	Expire int64
}

func (j *JWT) Issue(subject string) (string, error) {
	return Encode(NewClaims(subject, j.Issuer, j.Expire), j.Secret)
}

func (j *JWT) Verify(token string) (*Claims, error) {
	return Decode(token, j.Issuer, j.Secret)
}
