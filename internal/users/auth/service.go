// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lamnguyen/petvault/internal/platform/apperr"
	"github.com/lamnguyen/petvault/internal/platform/sec"
	"github.com/lamnguyen/petvault/pkg/uuid"
)

// Service implements the identity business logic: signup, login, logout,
// and opaque session resolution.
//
// It also satisfies middleware.SessionResolver, so the HTTP layer can turn
// cookies into caller identities without importing this package's internals.
type Service struct {
	users    UserRepository
	sessions SessionRepository
	logger   *slog.Logger
}

// NewService wires the repositories into an auth service.
func NewService(users UserRepository, sessions SessionRepository, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

/*
Signup registers a new account.

Flow:
 1. Reject the email if an account already owns it.
 2. Hash the password with bcrypt.
 3. Persist the account with a fresh UUIDv7.

Parameters:
  - ctx: context.Context
  - email: string (Already validated by the handler)
  - password: string (Plaintext; hashed before storage)

Returns:
  - *User: The created account
  - error: apperr.Duplicate if the email is taken
*/
func (service *Service) Signup(ctx context.Context, email, password string) (*User, error) {

	// 1. Uniqueness pre-check for a friendly error before hitting the constraint
	if _, err := service.users.FindByEmail(ctx, email); err == nil {
		return nil, apperr.Duplicate("Email is already registered")
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	// 2. Hash the credential
	passwordHash, err := sec.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to hash password: %w", err)
	}

	// 3. Persist
	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := service.users.Create(ctx, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "account_created", slog.String("user_id", user.ID))
	return user, nil
}

/*
Login verifies credentials and issues a new opaque session token.

Flow:
 1. Look up the account by email.
 2. Verify the password against the stored bcrypt hash.
 3. Generate a random token, store its hash in the session repository.

A wrong email and a wrong password produce the identical error so the
endpoint cannot be used to enumerate registered addresses.

Returns:
  - *User: The authenticated account
  - string: The raw session token (to be set as a cookie, never stored)
  - error: apperr.Unauthorized on bad credentials
*/
func (service *Service) Login(ctx context.Context, email, password string) (*User, string, error) {

	// 1. Resolve the account
	user, err := service.users.FindByEmail(ctx, email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, "", apperr.Unauthorized("Invalid email or password")
		}
		return nil, "", err
	}

	// 2. Verify the credential
	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", apperr.Unauthorized("Invalid email or password")
	}

	// 3. Issue the session
	token, err := sec.GenerateSecureToken(SessionTokenLength)
	if err != nil {
		return nil, "", err
	}
	if err := service.sessions.Set(ctx, sec.HashToken(token), user.ID, SessionTTL); err != nil {
		return nil, "", err
	}

	service.logger.InfoContext(ctx, "login_succeeded", slog.String("user_id", user.ID))
	return user, token, nil
}

/*
Logout revokes the session behind the given raw token.

Revoking an already-expired or unknown token is a success: the observable
outcome (no valid session) is identical either way.
*/
func (service *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return service.sessions.Delete(ctx, sec.HashToken(token))
}

/*
ResolveSession maps a raw session token to the account ID that owns it.

This satisfies middleware.SessionResolver. An unknown, expired, or revoked
token returns an error; the middleware then treats the request as anonymous.
*/
func (service *Service) ResolveSession(ctx context.Context, token string) (string, error) {
	return service.sessions.Get(ctx, sec.HashToken(token))
}
