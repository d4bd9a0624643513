// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

package account_test

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
	"github.com/lamnguyen/petvault/internal/platform/sec"
	"github.com/lamnguyen/petvault/internal/storage/memory"
	"github.com/lamnguyen/petvault/internal/users/account"
	"github.com/lamnguyen/petvault/internal/users/auth"
	"github.com/lamnguyen/petvault/pkg/uuid"
)

// fixture bundles the service with its backing state for assertions.
type fixture struct {
	service   *account.Service
	db        *memory.DB
	pictures  *assets.Store
	documents *assets.Store
	userID    string
}

// newFixture creates an account with one pet, one picture, and one document.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := memory.NewDB()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	pictureStore, err := assets.NewStore(t.TempDir())
	require.NoError(t, err)
	documentStore, err := assets.NewStore(t.TempDir())
	require.NoError(t, err)

	// Seed: one account
	hash, err := sec.HashPassword("old-password")
	require.NoError(t, err)
	user := &auth.User{ID: uuid.New(), Email: "owner@example.com", PasswordHash: hash}
	require.NoError(t, db.Users().Create(context.Background(), user))

	// Seed: one pet with a stored picture
	pet := &pets.Pet{
		ID:              uuid.New(),
		Name:            "Rex",
		Breed:           "Labrador",
		Age:             3,
		PictureFilename: "user_pic_1.png",
		OwnerID:         user.ID,
	}
	require.NoError(t, db.Pets().Create(context.Background(), pet))
	_, err = pictureStore.Save("user_pic_1.png", strings.NewReader("png"))
	require.NoError(t, err)

	// Seed: one document attached to the pet
	document := &documents.Document{
		ID:               uuid.New(),
		Filename:         "pet_doc_1.pdf",
		OriginalFilename: "vaccination.pdf",
		FileType:         "pdf",
		PetID:            pet.ID,
		OwnerID:          user.ID,
	}
	require.NoError(t, db.Documents().Create(context.Background(), document))
	_, err = documentStore.Save("pet_doc_1.pdf", strings.NewReader("pdf"))
	require.NoError(t, err)

	return &fixture{
		service:   account.NewService(db.Accounts(), pictureStore, documentStore, logger),
		db:        db,
		pictures:  pictureStore,
		documents: documentStore,
		userID:    user.ID,
	}
}

/*
TestInfo returns the caller's own profile.
*/
func TestInfo(t *testing.T) {
	f := newFixture(t)

	user, err := f.service.Info(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", user.Email)

	_, err = f.service.Info(context.Background(), uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestUpdateEmail verifies the change and the duplicate guard.
*/
func TestUpdateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 1. A fresh address is accepted
	require.NoError(t, f.service.UpdateEmail(ctx, f.userID, "new@example.com"))
	user, err := f.service.Info(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)

	// 2. Re-submitting one's own address is a no-op success
	assert.NoError(t, f.service.UpdateEmail(ctx, f.userID, "new@example.com"))

	// 3. Another account's address is rejected
	other := &auth.User{ID: uuid.New(), Email: "taken@example.com", PasswordHash: "x"}
	require.NoError(t, f.db.Users().Create(ctx, other))

	err = f.service.UpdateEmail(ctx, f.userID, "taken@example.com")
	require.Error(t, err)
	assert.Equal(t, "DUPLICATE", apperr.As(err).Code)
}

/*
TestChangePassword verifies re-authentication before the credential swap.
*/
func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("wrong_current_password", func(t *testing.T) {
		err := f.service.ChangePassword(ctx, f.userID, "not-the-password", "new-password")
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "UNAUTHORIZED", ae.Code)
		assert.Equal(t, 401, ae.HTTPStatus)
	})

	t.Run("correct_current_password", func(t *testing.T) {
		require.NoError(t, f.service.ChangePassword(ctx, f.userID, "old-password", "new-password"))

		// The new hash must verify the new password only
		user, err := f.service.Info(ctx, f.userID)
		require.NoError(t, err)
		assert.True(t, sec.CheckPasswordHash("new-password", user.PasswordHash))
		assert.False(t, sec.CheckPasswordHash("old-password", user.PasswordHash))
	})
}

/*
TestDelete verifies the full account cascade: rows and stored files.
*/
func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.True(t, f.pictures.Exists("user_pic_1.png"))
	require.True(t, f.documents.Exists("pet_doc_1.pdf"))

	// 1. Cascade
	require.NoError(t, f.service.Delete(ctx, f.userID))

	// 2. The account row is gone
	_, err := f.service.Info(ctx, f.userID)
	assert.True(t, apperr.IsNotFound(err))

	// 3. Owned pets are gone
	owned, err := f.db.Pets().ListByOwner(ctx, f.userID)
	require.NoError(t, err)
	assert.Empty(t, owned)

	// 4. Stored files are unlinked
	assert.False(t, f.pictures.Exists("user_pic_1.png"))
	assert.False(t, f.documents.Exists("pet_doc_1.pdf"))
}

/*
TestDelete_MissingFileStillDeletesRows verifies best-effort file handling.
*/
func TestDelete_MissingFileStillDeletesRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Simulate an already-missing file on disk
	require.NoError(t, f.pictures.Delete("user_pic_1.png"))

	// The cascade must still succeed
	require.NoError(t, f.service.Delete(ctx, f.userID))

	_, err := f.service.Info(ctx, f.userID)
	assert.True(t, apperr.IsNotFound(err))
}
