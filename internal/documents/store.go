// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

package documents

import (
	"context"
	"io"
)

// # Storage Contracts

// Repository defines the persistence operations of the document domain.
type Repository interface {
	// Create persists a new document metadata row.
	Create(ctx context.Context, document *Document) error

	// ListByPet returns every document attached to a pet, newest first.
	// The caller must have verified pet ownership beforehand.
	ListByPet(ctx context.Context, petID string) ([]Document, error)

	// FindOwned returns the document only if the account owns it.
	FindOwned(ctx context.Context, ownerID, documentID string) (*Document, error)

	// Delete removes a single document row.
	Delete(ctx context.Context, documentID string) error
}

// AssetStore is the slice of the file store the document service needs.
// Satisfied by assets.Store.
type AssetStore interface {
	Save(name string, reader io.Reader) (string, error)
	Delete(name string) error
}
