package logic

import (
	"context"

	"github.com/blues/chainstats/internal/apperr"
	"github.com/blues/chainstats/internal/auth"
	"github.com/blues/chainstats/internal/model"
	"github.com/blues/chainstats/internal/repository"
	"github.com/google/uuid"
)

// Account is what registration exposes to callers; the password hash stays
// inside the store.
type Account struct {
	Id       int64  `json:"id"`
	UUID     string `json:"uuid"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserLogic creates and validates accounts.
type UserLogic struct {
	repo   repository.UserRepository
	hasher auth.PasswordHasher
}

// NewUserLogic creates the account service.
func NewUserLogic(repo repository.UserRepository, hasher auth.PasswordHasher) *UserLogic {
	return &UserLogic{repo: repo, hasher: hasher}
}

// RegisterPublic creates a regular account. Public signups are always active
// and never admin.
func (l *UserLogic) RegisterPublic(ctx context.Context, username, email, password string) (*Account, error) {
	return l.register(ctx, username, email, password, true)
}

// RegisterByAdmin creates an account on behalf of an admin. The role gate
// runs before any store access so a forbidden request leaves no trace.
// isActive defaults to true when unspecified.
func (l *UserLogic) RegisterByAdmin(ctx context.Context, principal *auth.Principal, username, email, password string, isActive *bool) (*Account, error) {
	if principal == nil {
		return nil, apperr.Forbidden("Authentication required")
	}
	if !principal.IsAdmin {
		return nil, apperr.Forbidden("Admin privileges required")
	}

	active := true
	if isActive != nil {
		active = *isActive
	}

	return l.register(ctx, username, email, password, active)
}

func (l *UserLogic) register(ctx context.Context, username, email, password string, isActive bool) (*Account, error) {
	if username == "" {
		return nil, apperr.Invalid("username is required")
	}
	if email == "" {
		return nil, apperr.Invalid("email is required")
	}
	if password == "" {
		return nil, apperr.Invalid("password is required")
	}

	// Pre-checks give a precise field in the error; the unique indexes still
	// catch the concurrent duplicate that slips past both.
	exists, err := l.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("Email already registered")
	}

	exists, err = l.repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("Username already taken")
	}

	hashed, err := l.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &model.UserModel{
		UUID:     uuid.NewString(),
		Username: username,
		Email:    email,
		Password: hashed,
		IsActive: isActive,
		IsAdmin:  false,
	}
	if err := l.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return &Account{
		Id:       user.Id,
		UUID:     user.UUID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}
