package users

import (
	"context"

	"github.com/mserban/atelier/internal/application/ports"
	domerrors "github.com/mserban/atelier/internal/domain/errors"
)

type LoginInput struct {
	Email    string
	Password string
}

type Login struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
}

func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *Login {
	return &Login{users: users, hasher: hasher, issuer: issuer}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := uc.users.GetByEmail(ctx, NormalizeEmail(input.Email))
	if err != nil {
		return nil, err
	}
	// Blame both fields so the response does not reveal which one was wrong.
	if user == nil || !uc.hasher.Verify(input.Password, user.Password) {
		return nil, domerrors.FromCode(domerrors.CodeInvalidCredentials, "email", "password")
	}

	token, expiresAt, err := uc.issuer.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, TokenExpiresAt: expiresAt}, nil
}
