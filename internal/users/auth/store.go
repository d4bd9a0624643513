// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

package auth

import (
	"context"
	"time"
)

// # Storage Contracts

// UserRepository defines persistence operations for account records.
//
// Implementations must translate storage-level absence into
// apperr.NotFound("Account") so the service layer never inspects
// driver-specific sentinel errors.
type UserRepository interface {
	// Create persists a new account. A duplicate email must surface as
	// apperr.Duplicate.
	Create(ctx context.Context, user *User) error

	// FindByID returns the account with the given ID.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the account registered under the given email.
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// SessionRepository stores opaque session tokens keyed by their hash.
//
// The raw token never reaches this layer; callers hash it first via
// sec.HashToken.
type SessionRepository interface {
	// Set maps a token hash to an account ID for the given lifetime.
	Set(ctx context.Context, tokenHash, userID string, ttl time.Duration) error

	// Get returns the account ID a token hash maps to, or an error if the
	// session is unknown or expired.
	Get(ctx context.Context, tokenHash string) (string, error)

	// Delete revokes a session. Deleting an unknown hash is a no-op.
	Delete(ctx context.Context, tokenHash string) error
}
