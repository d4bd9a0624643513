// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

/*
Package pets implements the pet record resource: creation with optional
picture upload, owner-scoped listing and lookup, and cascade deletion that
removes attached documents and stored files.

# Ownership

Every query in this package is filtered by the owner's account ID. A pet that
exists but belongs to someone else is indistinguishable from a pet that does
not exist.
*/
package pets

import (
	"time"
)

// # Domain Entities

// Pet represents a single pet record owned by an account.
type Pet struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Breed           string    `json:"breed"`
	Age             int       `json:"age"`
	PictureFilename string    `json:"picture,omitempty"`
	OwnerID         string    `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldName    = "name"
	FieldBreed   = "breed"
	FieldAge     = "age"
	FieldPicture = "picture"
	FieldPetID   = "pet_id"
)

// # Upload Constraints

// allowedPictureExtensions is the allow-list for pet picture uploads.
var allowedPictureExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
}

// IsAllowedPictureExtension reports whether ext (lowercase, no dot) is an
// accepted picture type.
func IsAllowedPictureExtension(ext string) bool {
	_, ok := allowedPictureExtensions[ext]
	return ok
}
