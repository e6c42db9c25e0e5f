// Package service holds the business logic sitting between the HTTP
// handlers and the repositories
package service

import (
	"context"
	"errors"
	"fmt"

	"okravets/contacts-api/internal/repository"
	"okravets/contacts-api/pkg/security"
)

var (
	ErrInvalidEmail        = errors.New("invalid email")
	ErrEmailNotConfirmed   = errors.New("email not confirmed")
	ErrInvalidPassword     = errors.New("invalid password")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrVerification        = errors.New("verification error")
)

// TokenPair is what a successful login or refresh hands back to the client
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Auth implements the login, refresh and email confirmation protocols.
// Each user has at most one valid refresh token at a time; presenting a
// stale one clears the stored token and forces a fresh login.
type Auth struct {
	users  *repository.UserRepo
	argon  *security.ArgonHash
	tokens *security.TokenMaker
}

func NewAuth(users *repository.UserRepo, argon *security.ArgonHash, tokens *security.TokenMaker) *Auth {
	return &Auth{users: users, argon: argon, tokens: tokens}
}

func (a *Auth) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidEmail
		}

		return nil, err
	}

	if !user.Verified {
		return nil, ErrEmailNotConfirmed
	}

	ok, err := a.argon.VerifyPasswd(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password, %w", err)
	}

	if !ok {
		return nil, ErrInvalidPassword
	}

	return a.issuePair(ctx, user.Email)
}

// Refresh rotates the token pair. The presented token must match the
// one stored for the user; a mismatch clears the stored token so the
// stolen-or-stale one can't be retried either.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	email, err := a.tokens.EmailFromToken(refreshToken, security.ScopeRefresh)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}

		return nil, err
	}

	if user.RefreshToken != refreshToken {
		if err := a.users.UpdateRefreshToken(ctx, user, ""); err != nil {
			return nil, err
		}

		return nil, ErrInvalidRefreshToken
	}

	return a.issuePair(ctx, email)
}

// ConfirmEmail transitions a user to verified. Confirming twice is a
// no-op that reports the address as already confirmed.
func (a *Auth) ConfirmEmail(ctx context.Context, token string) (string, error) {
	email, err := a.tokens.EmailFromToken(token, security.ScopeEmail)
	if err != nil {
		return "", ErrVerification
	}

	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrVerification
		}

		return "", err
	}

	if user.Verified {
		return fmt.Sprintf("Your email '%s' is already confirmed", email), nil
	}

	if err := a.users.MarkVerified(ctx, email); err != nil {
		return "", err
	}

	return fmt.Sprintf("Email '%s' confirmed", email), nil
}

func (a *Auth) issuePair(ctx context.Context, email string) (*TokenPair, error) {
	access, err := a.tokens.CreateAccessToken(email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token, %w", err)
	}

	refresh, err := a.tokens.CreateRefreshToken(email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token, %w", err)
	}

	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := a.users.UpdateRefreshToken(ctx, user, refresh); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}
