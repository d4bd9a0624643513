// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

package pets_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamnguyen/petvault/internal/documents"
	"github.com/lamnguyen/petvault/internal/pets"
	"github.com/lamnguyen/petvault/internal/platform/apperr"
	"github.com/lamnguyen/petvault/internal/platform/assets"
	"github.com/lamnguyen/petvault/internal/storage/memory"
	"github.com/lamnguyen/petvault/pkg/uuid"
)

// fixture bundles the service with its backing state for assertions.
type fixture struct {
	service   *pets.Service
	db        *memory.DB
	pictures  *assets.Store
	documents *assets.Store
	ownerID   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := memory.NewDB()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	pictureStore, err := assets.NewStore(t.TempDir())
	require.NoError(t, err)
	documentStore, err := assets.NewStore(t.TempDir())
	require.NoError(t, err)

	return &fixture{
		service:   pets.NewService(db.Pets(), pictureStore, documentStore, logger),
		db:        db,
		pictures:  pictureStore,
		documents: documentStore,
		ownerID:   uuid.New(),
	}
}

/*
TestCreate_WithoutPicture verifies the plain creation path.
*/
func TestCreate_WithoutPicture(t *testing.T) {
	f := newFixture(t)

	pet, err := f.service.Create(context.Background(), f.ownerID, pets.CreateInput{
		Name:  "Rex",
		Breed: "Labrador",
		Age:   3,
	}, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, pet.ID)
	assert.Equal(t, "Rex", pet.Name)
	assert.Equal(t, f.ownerID, pet.OwnerID)
	assert.Empty(t, pet.PictureFilename)
}

/*
TestCreate_WithPicture verifies upload naming and storage.
*/
func TestCreate_WithPicture(t *testing.T) {
	f := newFixture(t)

	upload := &assets.Upload{
		OriginalFilename: "My Dog Photo.JPG",
		Content:          strings.NewReader("jpeg-bytes"),
	}

	pet, err := f.service.Create(context.Background(), f.ownerID, pets.CreateInput{
		Name:  "Rex",
		Breed: "Labrador",
		Age:   3,
	}, upload)
	require.NoError(t, err)

	// The stored name is system-generated, never the client's
	assert.NotEqual(t, "My Dog Photo.JPG", pet.PictureFilename)
	assert.True(t, strings.HasPrefix(pet.PictureFilename, "user_"+f.ownerID+"_pic_"))
	assert.True(t, strings.HasSuffix(pet.PictureFilename, ".jpg"))

	// The blob landed in the picture namespace
	assert.True(t, f.pictures.Exists(pet.PictureFilename))
}

/*
TestCreate_DisallowedPictureType verifies the extension allow-list.
*/
func TestCreate_DisallowedPictureType(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name     string
		filename string
	}{
		{"executable", "malware.exe"},
		{"pdf_is_not_a_picture", "scan.pdf"},
		{"no_extension", "photo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upload := &assets.Upload{
				OriginalFilename: tt.filename,
				Content:          strings.NewReader("bytes"),
			}

			_, err := f.service.Create(context.Background(), f.ownerID, pets.CreateInput{
				Name:  "Rex",
				Breed: "Labrador",
				Age:   1,
			}, upload)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestList verifies owner scoping: only the caller's pets come back.
*/
func TestList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	strangerID := uuid.New()
	for _, spec := range []struct {
		name  string
		owner string
	}{
		{"Rex", f.ownerID},
		{"Bella", f.ownerID},
		{"Intruder", strangerID},
	} {
		_, err := f.service.Create(ctx, spec.owner, pets.CreateInput{
			Name:  spec.name,
			Breed: "Mixed",
			Age:   2,
		}, nil)
		require.NoError(t, err)
	}

	owned, err := f.service.List(ctx, f.ownerID)
	require.NoError(t, err)
	require.Len(t, owned, 2)

	// Newest first
	assert.Equal(t, "Bella", owned[0].Name)
	assert.Equal(t, "Rex", owned[1].Name)
}

/*
TestList_EmptyAccount verifies a fresh account sees an empty list, not an error.
*/
func TestList_EmptyAccount(t *testing.T) {
	f := newFixture(t)

	owned, err := f.service.List(context.Background(), f.ownerID)
	require.NoError(t, err)
	assert.NotNil(t, owned)
	assert.Empty(t, owned)
}

/*
TestGetOwned verifies the ownership fold: foreign pets read as absent.
*/
func TestGetOwned(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pet, err := f.service.Create(ctx, f.ownerID, pets.CreateInput{Name: "Rex", Breed: "Lab", Age: 1}, nil)
	require.NoError(t, err)

	// Owner sees the pet
	found, err := f.service.GetOwned(ctx, f.ownerID, pet.ID)
	require.NoError(t, err)
	assert.Equal(t, pet.ID, found.ID)

	// A stranger gets the same NotFound as for a nonexistent ID
	_, err = f.service.GetOwned(ctx, uuid.New(), pet.ID)
	assert.True(t, apperr.IsNotFound(err))
	_, err = f.service.GetOwned(ctx, f.ownerID, uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestDelete verifies the pet cascade: document rows, files, and the picture.
*/
func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 1. A pet with a picture
	upload := &assets.Upload{OriginalFilename: "rex.png", Content: strings.NewReader("png")}
	pet, err := f.service.Create(ctx, f.ownerID, pets.CreateInput{Name: "Rex", Breed: "Lab", Age: 1}, upload)
	require.NoError(t, err)

	// 2. An attached document (seeded directly into the shared state)
	document := &documents.Document{
		ID:               uuid.New(),
		Filename:         "pet_doc_1.pdf",
		OriginalFilename: "vaccination.pdf",
		FileType:         "pdf",
		PetID:            pet.ID,
		OwnerID:          f.ownerID,
	}
	require.NoError(t, f.db.Documents().Create(ctx, document))
	_, err = f.documents.Save("pet_doc_1.pdf", strings.NewReader("pdf"))
	require.NoError(t, err)

	// 3. Cascade
	require.NoError(t, f.service.Delete(ctx, f.ownerID, pet.ID))

	// 4. Everything is gone: pet row, document row, both files
	_, err = f.service.GetOwned(ctx, f.ownerID, pet.ID)
	assert.True(t, apperr.IsNotFound(err))

	_, err = f.db.Documents().FindOwned(ctx, f.ownerID, document.ID)
	assert.True(t, apperr.IsNotFound(err))

	assert.False(t, f.pictures.Exists(pet.PictureFilename))
	assert.False(t, f.documents.Exists("pet_doc_1.pdf"))
}

/*
TestDelete_ForeignPet verifies a stranger cannot delete someone else's pet.
*/
func TestDelete_ForeignPet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pet, err := f.service.Create(ctx, f.ownerID, pets.CreateInput{Name: "Rex", Breed: "Lab", Age: 1}, nil)
	require.NoError(t, err)

	err = f.service.Delete(ctx, uuid.New(), pet.ID)
	assert.True(t, apperr.IsNotFound(err))

	// The pet must still exist for its real owner
	_, err = f.service.GetOwned(ctx, f.ownerID, pet.ID)
	assert.NoError(t, err)
}

/*
TestResolveOwned verifies the name resolution used by the documents domain.
*/
func TestResolveOwned(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pet, err := f.service.Create(ctx, f.ownerID, pets.CreateInput{Name: "Bella", Breed: "Poodle", Age: 2}, nil)
	require.NoError(t, err)

	name, err := f.service.ResolveOwned(ctx, f.ownerID, pet.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bella", name)

	_, err = f.service.ResolveOwned(ctx, uuid.New(), pet.ID)
	assert.True(t, apperr.IsNotFound(err))
}
