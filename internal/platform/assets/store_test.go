// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

package assets_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamnguyen/petvault/internal/platform/assets"
)

/*
TestStore_SaveAndExists verifies the basic write path.
*/
func TestStore_SaveAndExists(t *testing.T) {
	store, err := assets.NewStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.Save("user_1_pic_abc.png", strings.NewReader("fake-png-bytes"))
	require.NoError(t, err)

	// The file must land on disk with the exact content
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fake-png-bytes", string(content))

	assert.True(t, store.Exists("user_1_pic_abc.png"))
	assert.False(t, store.Exists("never-saved.png"))
}

/*
TestStore_Delete verifies deletion and its idempotency.
*/
func TestStore_Delete(t *testing.T) {
	store, err := assets.NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save("pet_1_doc_abc.pdf", strings.NewReader("fake-pdf"))
	require.NoError(t, err)
	require.True(t, store.Exists("pet_1_doc_abc.pdf"))

	// First delete removes the blob
	require.NoError(t, store.Delete("pet_1_doc_abc.pdf"))
	assert.False(t, store.Exists("pet_1_doc_abc.pdf"))

	// Second delete is a no-op, not an error
	assert.NoError(t, store.Delete("pet_1_doc_abc.pdf"))
}

/*
TestStore_PathTraversal verifies that crafted names cannot escape the base
directory.
*/
func TestStore_PathTraversal(t *testing.T) {
	baseDir := t.TempDir()
	store, err := assets.NewStore(baseDir)
	require.NoError(t, err)

	path, err := store.Save("../../etc/evil.txt", strings.NewReader("payload"))
	require.NoError(t, err)

	// The path components must have been stripped
	assert.Equal(t, filepath.Join(baseDir, "evil.txt"), path)
	assert.True(t, store.Exists("evil.txt"))
}

/*
TestNewStore_CreatesDirectory verifies that a missing base directory is
created on construction.
*/
func TestNewStore_CreatesDirectory(t *testing.T) {
	baseDir := filepath.Join(t.TempDir(), "nested", "uploads")

	_, err := assets.NewStore(baseDir)
	require.NoError(t, err)

	info, err := os.Stat(baseDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

/*
TestNewStore_EmptyDir verifies the guard against a blank configuration.
*/
func TestNewStore_EmptyDir(t *testing.T) {
	_, err := assets.NewStore("   ")
	assert.Error(t, err)
}

/*
TestUpload_Extension verifies extension extraction and lowercasing.
*/
func TestUpload_Extension(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected string
	}{
		{"lowercase", "photo.png", "png"},
		{"uppercase", "SCAN.PDF", "pdf"},
		{"mixed", "Notes.TxT", "txt"},
		{"no_extension", "README", ""},
		{"with_path", "../secret/record.jpg", "jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upload := &assets.Upload{OriginalFilename: tt.filename}
			assert.Equal(t, tt.expected, upload.Extension())
		})
	}
}

/*
TestUpload_BaseName verifies path components are stripped from display names.
*/
func TestUpload_BaseName(t *testing.T) {
	upload := &assets.Upload{OriginalFilename: "../../tmp/vaccination.pdf"}
	assert.Equal(t, "vaccination.pdf", upload.BaseName())
}
