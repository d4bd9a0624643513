// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

/*
Package account implements profile management for an authenticated user:
reading account info, changing email or password, and deleting the account
together with every pet, document, and stored file it owns.

All operations are scoped to the caller's own account; the account ID always
comes from the resolved session, never from the request payload.
*/
package account

import (
	"context"

	"github.com/lamnguyen/petvault/internal/users/auth"
)

// # Storage Contracts

// AssetRefs lists every stored filename owned by an account, gathered before
// the row cascade so the files can be unlinked from disk.
type AssetRefs struct {
	// Pictures holds pet picture filenames (picture namespace).
	Pictures []string
	// Documents holds document filenames (document namespace).
	Documents []string
}

// Repository defines the persistence operations of the account domain.
type Repository interface {
	// FindByID returns the account, or apperr.NotFound("Account").
	FindByID(ctx context.Context, id string) (*auth.User, error)

	// FindByEmail returns the account registered under the email.
	FindByEmail(ctx context.Context, email string) (*auth.User, error)

	// UpdateEmail replaces the account's email address.
	UpdateEmail(ctx context.Context, id, email string) error

	// UpdatePassword replaces the account's password hash.
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// ListAssetRefs collects every stored filename reachable from the account.
	ListAssetRefs(ctx context.Context, ownerID string) (*AssetRefs, error)

	// DeleteCascade removes the account's documents, pets, and the account
	// row itself inside a single transaction.
	DeleteCascade(ctx context.Context, ownerID string) error
}

// AssetRemover unlinks a stored blob by name. Satisfied by assets.Store.
type AssetRemover interface {
	Delete(name string) error
}

// SessionRevoker invalidates the session behind a raw token. Satisfied by
// auth.Service.
type SessionRevoker interface {
	Logout(ctx context.Context, token string) error
}
