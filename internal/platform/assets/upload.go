// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

package assets

import (
	"io"
	"path/filepath"
	"strings"
)

// Upload carries a client-submitted file from the HTTP layer into a resource
// service. The service decides the stored name; the original name is kept
// only as display metadata.
type Upload struct {
	// OriginalFilename is the client-supplied name, untrusted and unsanitized.
	OriginalFilename string
	// Content streams the file bytes.
	Content io.Reader
	// Size is the declared content length in bytes.
	Size int64
}

// Extension returns the lowercased extension of the original filename
// without the leading dot, e.g. "jpg". Empty when no extension is present.
func (upload *Upload) Extension() string {
	ext := filepath.Ext(upload.OriginalFilename)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// BaseName returns the original filename stripped of any path components,
// safe to persist as display metadata.
func (upload *Upload) BaseName() string {
	return filepath.Base(upload.OriginalFilename)
}
