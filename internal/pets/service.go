// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

package pets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lamnguyen/petvault/internal/platform/assets"
	"github.com/lamnguyen/petvault/internal/platform/validate"
	"github.com/lamnguyen/petvault/pkg/uuid"
)

// CreateInput carries the validated fields for a new pet record.
type CreateInput struct {
	Name  string
	Breed string
	Age   int
}

// Service implements the pet resource business logic.
type Service struct {
	repo      Repository
	pictures  AssetStore
	documents AssetStore
	logger    *slog.Logger
}

// NewService wires the repository and both asset namespaces into the service.
//
// The document namespace is needed for cascade deletion: removing a pet also
// unlinks the files of every document attached to it.
func NewService(repo Repository, pictures, documents AssetStore, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		pictures:  pictures,
		documents: documents,
		logger:    logger,
	}
}

// List returns every pet the account owns, newest first.
func (service *Service) List(ctx context.Context, ownerID string) ([]Pet, error) {
	return service.repo.ListByOwner(ctx, ownerID)
}

// GetOwned returns the pet only if the account owns it.
func (service *Service) GetOwned(ctx context.Context, ownerID, petID string) (*Pet, error) {
	return service.repo.FindOwned(ctx, ownerID, petID)
}

// ResolveOwned returns the pet's display name after an ownership check.
// Used by the documents domain to authorize per-pet operations.
func (service *Service) ResolveOwned(ctx context.Context, ownerID, petID string) (string, error) {
	pet, err := service.repo.FindOwned(ctx, ownerID, petID)
	if err != nil {
		return "", err
	}
	return pet.Name, nil
}

/*
Create registers a new pet, optionally storing an uploaded picture.

Flow:
 1. If a picture is attached, check its extension against the allow-list.
 2. Store the picture under a generated, collision-free name.
 3. Persist the pet row. If the insert fails, the stored picture is
    unlinked again so no orphan file remains.

The stored filename embeds the owner ID and a UUIDv7, so it is unique,
time-sortable, and carries no client-controlled bytes.

Parameters:
  - ctx: context.Context
  - ownerID: string (From the session, never the payload)
  - input: CreateInput (Validated by the handler)
  - picture: *assets.Upload (nil when no file was attached)

Returns:
  - *Pet: The created record
  - error: apperr.ValidationError for a disallowed picture type
*/
func (service *Service) Create(ctx context.Context, ownerID string, input CreateInput, picture *assets.Upload) (*Pet, error) {
	pet := &Pet{
		ID:      uuid.New(),
		Name:    input.Name,
		Breed:   input.Breed,
		Age:     input.Age,
		OwnerID: ownerID,
	}

	// 1. Optional picture upload
	if picture != nil {
		ext := picture.Extension()
		if !IsAllowedPictureExtension(ext) {
			return nil, validate.RequiredError(FieldPicture, "Allowed picture types: png, jpg, jpeg, gif")
		}

		// 2. Generated name: user_<owner>_pic_<uuidv7>.<ext>
		storedName := fmt.Sprintf("user_%s_pic_%s.%s", ownerID, uuid.New(), ext)
		if _, err := service.pictures.Save(storedName, picture.Content); err != nil {
			return nil, fmt.Errorf("pets: failed to store picture: %w", err)
		}
		pet.PictureFilename = storedName
	}

	// 3. Persist the row; roll back the file on failure
	if err := service.repo.Create(ctx, pet); err != nil {
		if pet.PictureFilename != "" {
			if cleanupErr := service.pictures.Delete(pet.PictureFilename); cleanupErr != nil {
				service.logger.WarnContext(ctx, "picture_rollback_failed",
					slog.String("filename", pet.PictureFilename),
					slog.String("error", cleanupErr.Error()))
			}
		}
		return nil, err
	}

	service.logger.InfoContext(ctx, "pet_created",
		slog.String("pet_id", pet.ID), slog.String("user_id", ownerID))
	return pet, nil
}

/*
Delete removes a pet, its documents, and every stored file they reference.

Flow:
 1. Ownership check. Not owned folds into NotFound.
 2. Collect the stored filenames of attached documents.
 3. Unlink document files and the picture. Failures are logged and
    skipped so the row cascade still runs.
 4. Delete document rows and the pet row in one transaction.
*/
func (service *Service) Delete(ctx context.Context, ownerID, petID string) error {

	// 1. Ownership gate
	pet, err := service.repo.FindOwned(ctx, ownerID, petID)
	if err != nil {
		return err
	}

	// 2. Gather document filenames before the rows disappear
	docNames, err := service.repo.DocumentFilenames(ctx, pet.ID)
	if err != nil {
		return err
	}

	// 3. Best-effort file removal
	for _, name := range docNames {
		if err := service.documents.Delete(name); err != nil {
			service.logger.WarnContext(ctx, "document_unlink_failed",
				slog.String("filename", name), slog.String("error", err.Error()))
		}
	}
	if pet.PictureFilename != "" {
		if err := service.pictures.Delete(pet.PictureFilename); err != nil {
			service.logger.WarnContext(ctx, "picture_unlink_failed",
				slog.String("filename", pet.PictureFilename), slog.String("error", err.Error()))
		}
	}

	// 4. Atomic row cascade
	if err := service.repo.DeleteCascade(ctx, pet.ID); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "pet_deleted",
		slog.String("pet_id", pet.ID), slog.String("user_id", ownerID))
	return nil
}
