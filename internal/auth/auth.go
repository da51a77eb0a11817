package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/blues/chainstats/internal/apperr"
	"github.com/blues/chainstats/internal/repository"
	"github.com/golang-jwt/jwt/v5"
)

// Principal is an authenticated actor making a request.
type Principal struct {
	UserId   int64
	Username string
	IsAdmin  bool
}

// Authenticator resolves a bearer token to a Principal. Token issuance is
// handled elsewhere; this side only verifies.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*Principal, error)
}

// JWTAuthenticator verifies HS256 tokens and resolves the subject claim to a
// stored account.
type JWTAuthenticator struct {
	secret []byte
	users  repository.UserRepository
}

func NewJWTAuthenticator(secret string, users repository.UserRepository) *JWTAuthenticator {
	return &JWTAuthenticator{secret: []byte(secret), users: users}
}

func (a *JWTAuthenticator) Authenticate(ctx context.Context, token string) (*Principal, error) {
	tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, errors.New("token has no subject")
	}

	user, err := a.users.GetByUsername(ctx, sub)
	if err != nil {
		if apperr.CodeOf(err) == apperr.CodeNotFound {
			return nil, errors.New("unknown account")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, errors.New("account is inactive")
	}

	return &Principal{
		UserId:   user.Id,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}, nil
}
