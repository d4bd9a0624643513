// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

/*
Package assets provides filesystem-backed binary blob storage for uploads.

Each [Store] owns a single base directory (one namespace). PetVault runs two
independent stores (pictures and documents) so generated names can never
collide across namespaces.

# Contract

  - Save writes bytes under a generated name and returns the final path.
  - Delete is idempotent: removing an absent name is a no-op, never an error.
  - Exists reports presence without opening the file.

The store is extension-agnostic; allow-lists are enforced by the resource
services before a name ever reaches this layer.
*/
package assets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store saves uploaded blobs to disk under a base directory.
type Store struct {
	baseDir string
}

// NewStore creates the base directory if missing and returns a ready Store.
func NewStore(baseDir string) (*Store, error) {
	if strings.TrimSpace(baseDir) == "" {
		return nil, fmt.Errorf("assets: base directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("assets: failed to create base directory: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

/*
Save streams the reader's content into a file with the given generated name.

Parameters:
  - name: string (System-generated filename; never a raw client name)
  - reader: io.Reader (Upload content)

Returns:
  - string: Final filesystem path of the stored blob
  - error: Creation or write failures
*/
func (store *Store) Save(name string, reader io.Reader) (string, error) {
	target := store.resolve(name)

	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("assets: failed to create %q: %w", name, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		// Remove the partial file so Exists never reports a half-written blob.
		_ = os.Remove(target)
		return "", fmt.Errorf("assets: failed to write %q: %w", name, err)
	}

	return target, nil
}

/*
Delete removes a stored blob by name.

Description: Idempotent; deleting a name that does not exist is a no-op.

Parameters:
  - name: string

Returns:
  - error: Unlink failures other than absence
*/
func (store *Store) Delete(name string) error {
	err := os.Remove(store.resolve(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("assets: failed to delete %q: %w", name, err)
	}
	return nil
}

// Exists reports whether a blob with the given name is present.
func (store *Store) Exists(name string) bool {
	info, err := os.Stat(store.resolve(name))
	return err == nil && !info.IsDir()
}

// resolve joins the name onto the base directory, stripping any path
// components so a crafted name can never escape the namespace.
func (store *Store) resolve(name string) string {
	return filepath.Join(store.baseDir, filepath.Base(name))
}
