// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lamnguyen/petvault/internal/platform/apperr"
	"github.com/lamnguyen/petvault/internal/platform/sec"
	"github.com/lamnguyen/petvault/internal/users/auth"
)

// Service implements the account management business logic.
type Service struct {
	repo      Repository
	pictures  AssetRemover
	documents AssetRemover
	logger    *slog.Logger
}

// NewService wires the repository and both asset namespaces into the service.
func NewService(repo Repository, pictures, documents AssetRemover, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		pictures:  pictures,
		documents: documents,
		logger:    logger,
	}
}

// Info returns the caller's own account record.
func (service *Service) Info(ctx context.Context, userID string) (*auth.User, error) {
	return service.repo.FindByID(ctx, userID)
}

/*
UpdateEmail changes the caller's email address.

Flow:
 1. Reject the new address if another account already owns it.
 2. Persist the change (the unique index covers the race window).

Returns:
  - error: apperr.Duplicate if the email belongs to a different account
*/
func (service *Service) UpdateEmail(ctx context.Context, userID, newEmail string) error {

	// 1. Uniqueness pre-check for a friendly error message
	existing, err := service.repo.FindByEmail(ctx, newEmail)
	if err == nil && existing.ID != userID {
		return apperr.Duplicate("Email is already registered")
	}
	if err != nil && !apperr.IsNotFound(err) {
		return err
	}

	// 2. Persist
	if err := service.repo.UpdateEmail(ctx, userID, newEmail); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "email_updated", slog.String("user_id", userID))
	return nil
}

/*
ChangePassword replaces the caller's password after re-verifying the current one.

A wrong current password is an authentication failure (401), not a validation
failure: the caller holds a valid session but failed to prove knowledge of
the credential being replaced.
*/
func (service *Service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {

	// 1. Load the account to verify the current credential
	user, err := service.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	// 2. Re-verify before allowing the swap
	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	// 3. Hash and persist the replacement
	newHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("account: failed to hash new password: %w", err)
	}
	if err := service.repo.UpdatePassword(ctx, userID, newHash); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "password_changed", slog.String("user_id", userID))
	return nil
}

/*
Delete removes the caller's account and everything it owns.

Flow:
 1. Collect every stored filename reachable from the account.
 2. Unlink the files from disk. Failures are logged and skipped: a missing
    or locked file must never leave the database half-deleted.
 3. Run the row cascade (documents, pets, account) in one transaction.

The session revocation is handled by the HTTP layer, which still holds the
raw token.
*/
func (service *Service) Delete(ctx context.Context, userID string) error {

	// 1. Gather asset references before the rows disappear
	refs, err := service.repo.ListAssetRefs(ctx, userID)
	if err != nil {
		return err
	}

	// 2. Best-effort file removal
	for _, name := range refs.Pictures {
		if err := service.pictures.Delete(name); err != nil {
			service.logger.WarnContext(ctx, "picture_unlink_failed",
				slog.String("filename", name), slog.String("error", err.Error()))
		}
	}
	for _, name := range refs.Documents {
		if err := service.documents.Delete(name); err != nil {
			service.logger.WarnContext(ctx, "document_unlink_failed",
				slog.String("filename", name), slog.String("error", err.Error()))
		}
	}

	// 3. Atomic row cascade
	if err := service.repo.DeleteCascade(ctx, userID); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "account_deleted", slog.String("user_id", userID))
	return nil
}
