// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

package documents

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lamnguyen/petvault/internal/platform/assets"
	"github.com/lamnguyen/petvault/internal/platform/validate"
	"github.com/lamnguyen/petvault/pkg/uuid"
)

// PetResolver authorizes per-pet operations. It returns the pet's display
// name when the account owns the pet, or apperr.NotFound("Pet") otherwise.
// Satisfied by pets.Service.
type PetResolver interface {
	ResolveOwned(ctx context.Context, ownerID, petID string) (string, error)
}

// Service implements the document resource business logic.
type Service struct {
	repo   Repository
	pets   PetResolver
	store  AssetStore
	logger *slog.Logger
}

// NewService wires the repository, pet resolver, and document file store.
func NewService(repo Repository, pets PetResolver, store AssetStore, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		pets:   pets,
		store:  store,
		logger: logger,
	}
}

/*
Upload attaches a file to one of the caller's pets.

Flow:
 1. Ownership check on the target pet. Not owned folds into NotFound.
 2. Reject missing or empty files and disallowed extensions.
 3. Store the file under a generated name: pet_<petID>_doc_<uuidv7>.<ext>.
 4. Persist the metadata row. If the insert fails, the stored file is
    unlinked again.

Returns:
  - *Document: The created attachment
  - error: apperr.NotFound for a foreign pet, apperr.ValidationError for
    a bad file
*/
func (service *Service) Upload(ctx context.Context, ownerID, petID string, upload *assets.Upload) (*Document, error) {

	// 1. Ownership gate before touching any file data
	if _, err := service.pets.ResolveOwned(ctx, ownerID, petID); err != nil {
		return nil, err
	}

	// 2. File presence and type checks
	if upload == nil || upload.OriginalFilename == "" {
		return nil, validate.RequiredError(FieldFile, "No file uploaded")
	}
	ext := upload.Extension()
	if !IsAllowedDocumentExtension(ext) {
		return nil, validate.RequiredError(FieldFile, "Allowed document types: pdf, doc, docx, jpg, jpeg, png, txt")
	}

	// 3. Generated name: pet_<pet>_doc_<uuidv7>.<ext>
	storedName := fmt.Sprintf("pet_%s_doc_%s.%s", petID, uuid.New(), ext)
	if _, err := service.store.Save(storedName, upload.Content); err != nil {
		return nil, fmt.Errorf("documents: failed to store file: %w", err)
	}

	// 4. Persist the row; roll back the file on failure
	document := &Document{
		ID:               uuid.New(),
		Filename:         storedName,
		OriginalFilename: upload.BaseName(),
		FileType:         ext,
		PetID:            petID,
		OwnerID:          ownerID,
	}
	if err := service.repo.Create(ctx, document); err != nil {
		if cleanupErr := service.store.Delete(storedName); cleanupErr != nil {
			service.logger.WarnContext(ctx, "document_rollback_failed",
				slog.String("filename", storedName),
				slog.String("error", cleanupErr.Error()))
		}
		return nil, err
	}

	service.logger.InfoContext(ctx, "document_uploaded",
		slog.String("document_id", document.ID),
		slog.String("pet_id", petID),
		slog.String("user_id", ownerID))
	return document, nil
}

/*
ListForPet returns a pet's display name and its documents, newest first.

The ownership check on the pet doubles as the authorization gate: a foreign
or unknown pet returns NotFound before any document row is read.
*/
func (service *Service) ListForPet(ctx context.Context, ownerID, petID string) (string, []Document, error) {

	// 1. Ownership gate, which also resolves the display name
	petName, err := service.pets.ResolveOwned(ctx, ownerID, petID)
	if err != nil {
		return "", nil, err
	}

	// 2. Fetch the attachments
	documents, err := service.repo.ListByPet(ctx, petID)
	if err != nil {
		return "", nil, err
	}

	return petName, documents, nil
}

/*
Delete removes a single document and its stored file.

Flow:
 1. Ownership check via the document's own ownerid column.
 2. Unlink the file. A failure is logged and skipped so the metadata row
    is still removed.
 3. Delete the row.
*/
func (service *Service) Delete(ctx context.Context, ownerID, documentID string) error {

	// 1. Ownership gate
	document, err := service.repo.FindOwned(ctx, ownerID, documentID)
	if err != nil {
		return err
	}

	// 2. Best-effort file removal
	if err := service.store.Delete(document.Filename); err != nil {
		service.logger.WarnContext(ctx, "document_unlink_failed",
			slog.String("filename", document.Filename),
			slog.String("error", err.Error()))
	}

	// 3. Row removal
	if err := service.repo.Delete(ctx, document.ID); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "document_deleted",
		slog.String("document_id", document.ID),
		slog.String("user_id", ownerID))
	return nil
}
