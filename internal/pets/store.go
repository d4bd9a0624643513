// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

package pets

import (
	"context"
	"io"
)

// # Storage Contracts

// Repository defines the persistence operations of the pet domain.
//
// Lookup methods take the owner's account ID and must fold "exists but not
// owned" into apperr.NotFound("Pet"), keeping the ownership rule inside the
// storage layer where it cannot be forgotten.
type Repository interface {
	// Create persists a new pet record.
	Create(ctx context.Context, pet *Pet) error

	// ListByOwner returns every pet the account owns, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]Pet, error)

	// FindOwned returns the pet only if the account owns it.
	FindOwned(ctx context.Context, ownerID, petID string) (*Pet, error)

	// DocumentFilenames lists stored filenames of documents attached to a pet.
	DocumentFilenames(ctx context.Context, petID string) ([]string, error)

	// DeleteCascade removes the pet's document rows and the pet row in a
	// single transaction.
	DeleteCascade(ctx context.Context, petID string) error
}

// AssetStore is the slice of the file store the pet service needs.
// Satisfied by assets.Store.
type AssetStore interface {
	Save(name string, reader io.Reader) (string, error)
	Delete(name string) error
}
