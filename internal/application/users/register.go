package users

import (
	"context"
	"strings"
	"time"

	"github.com/mserban/atelier/internal/application/ports"
	"github.com/mserban/atelier/internal/domain"
	domerrors "github.com/mserban/atelier/internal/domain/errors"
)

type RegisterInput struct {
	Name           string
	Email          string
	Password       string
	MasterPassword string
}

// AuthResult is what register and login hand back to the HTTP layer: the
// user plus a freshly issued session token and its cookie expiry.
type AuthResult struct {
	User           *domain.User
	Token          string
	TokenExpiresAt time.Time
}

type Register struct {
	users          ports.UserRepository
	hasher         ports.PasswordHasher
	issuer         ports.TokenIssuer
	masterPassword string
}

func NewRegister(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, masterPassword string) *Register {
	return &Register{users: users, hasher: hasher, issuer: issuer, masterPassword: masterPassword}
}

func (uc *Register) Execute(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if input.MasterPassword != uc.masterPassword {
		return nil, domerrors.FromCode(domerrors.CodeInvalidMasterPassword, "masterPassword")
	}

	email := NormalizeEmail(input.Email)
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.FromCode(domerrors.CodeEmailInUse, "email")
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Name:      strings.TrimSpace(input.Name),
		Email:     email,
		Password:  hash,
		CreatedAt: time.Now(),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, expiresAt, err := uc.issuer.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, TokenExpiresAt: expiresAt}, nil
}

// NormalizeEmail trims and lowercases, the canonical stored form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
