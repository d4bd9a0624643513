// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

/*
Package documents implements per-pet file attachments: vet records, adoption
papers, and similar paperwork stored on disk with a metadata row in Postgres.

# Ownership

A document belongs to the account that owns its pet. Every lookup is scoped
by both the document's own ownerid column and, for per-pet listings, an
ownership check on the pet itself.
*/
package documents

import (
	"time"
)

// # Domain Entities

// Document represents one file attached to a pet.
type Document struct {
	ID string `json:"id"`

	// Filename is the system-generated stored name on disk.
	Filename string `json:"filename"`

	// OriginalFilename is the client's display name, stripped of any path
	// components. Never used to address the filesystem.
	OriginalFilename string `json:"original_filename"`

	// FileType is the lowercased extension, e.g. "pdf".
	FileType string `json:"file_type"`

	PetID      string    `json:"pet_id"`
	OwnerID    string    `json:"-"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// # Field Identifiers

const (
	FieldFile       = "file"
	FieldPetID      = "pet_id"
	FieldDocumentID = "document_id"
)

// # Upload Constraints

// allowedDocumentExtensions is the allow-list for document uploads.
var allowedDocumentExtensions = map[string]struct{}{
	"pdf":  {},
	"doc":  {},
	"docx": {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"txt":  {},
}

// IsAllowedDocumentExtension reports whether ext (lowercase, no dot) is an
// accepted document type.
func IsAllowedDocumentExtension(ext string) bool {
	_, ok := allowedDocumentExtensions[ext]
	return ok
}
