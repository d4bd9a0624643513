// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lamnguyen/petvault/internal/platform/apperr"
	"github.com/lamnguyen/petvault/internal/users/auth"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// PostgresRepository is the pgx-backed implementation of [Repository].
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository wires a connection pool into an account repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var _ Repository = (*PostgresRepository)(nil)

// FindByID returns the account with the given ID, or apperr.NotFound.
func (repo *PostgresRepository) FindByID(ctx context.Context, id string) (*auth.User, error) {
	query := `
		SELECT id, email, passwordhash, createdat, updatedat
		FROM pet.account
		WHERE id = $1`

	return repo.scanOne(repo.pool.QueryRow(ctx, query, id))
}

// FindByEmail returns the account registered under the email, or apperr.NotFound.
func (repo *PostgresRepository) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := `
		SELECT id, email, passwordhash, createdat, updatedat
		FROM pet.account
		WHERE email = $1`

	return repo.scanOne(repo.pool.QueryRow(ctx, query, email))
}

// UpdateEmail replaces the account's email address.
func (repo *PostgresRepository) UpdateEmail(ctx context.Context, id, email string) error {
	query := `
		UPDATE pet.account
		SET email = $2, updatedat = NOW()
		WHERE id = $1`

	tag, err := repo.pool.Exec(ctx, query, id, email)
	if err != nil {
		// The unique index still guards against a concurrent registration.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperr.Duplicate("Email is already registered")
		}
		return fmt.Errorf("account: failed to update email: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}

	return nil
}

// UpdatePassword replaces the account's password hash.
func (repo *PostgresRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `
		UPDATE pet.account
		SET passwordhash = $2, updatedat = NOW()
		WHERE id = $1`

	tag, err := repo.pool.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("account: failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}

	return nil
}

/*
ListAssetRefs collects every stored filename reachable from the account.

Description: Runs two read-only queries. Picture filenames come from the
account's pets (NULL pictures are filtered out); document filenames come
from documents attached to those pets.
*/
func (repo *PostgresRepository) ListAssetRefs(ctx context.Context, ownerID string) (*AssetRefs, error) {
	refs := &AssetRefs{}

	pictureQuery := `
		SELECT picturefilename
		FROM pet.pet
		WHERE ownerid = $1 AND picturefilename IS NOT NULL`

	pictures, err := repo.collectStrings(ctx, pictureQuery, ownerID)
	if err != nil {
		return nil, fmt.Errorf("account: failed to list picture refs: %w", err)
	}
	refs.Pictures = pictures

	documentQuery := `
		SELECT d.filename
		FROM pet.document d
		JOIN pet.pet p ON p.id = d.petid
		WHERE p.ownerid = $1`

	documents, err := repo.collectStrings(ctx, documentQuery, ownerID)
	if err != nil {
		return nil, fmt.Errorf("account: failed to list document refs: %w", err)
	}
	refs.Documents = documents

	return refs, nil
}

/*
DeleteCascade removes the account and everything it owns in one transaction.

Order matters: document rows first, then pet rows, then the account row, so
no statement ever violates a foreign key. Either all three deletions become
visible or none do.
*/
func (repo *PostgresRepository) DeleteCascade(ctx context.Context, ownerID string) error {
	tx, err := repo.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("account: failed to begin cascade: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	statements := []string{
		`DELETE FROM pet.document WHERE petid IN (SELECT id FROM pet.pet WHERE ownerid = $1)`,
		`DELETE FROM pet.pet WHERE ownerid = $1`,
	}
	for _, statement := range statements {
		if _, err := tx.Exec(ctx, statement, ownerID); err != nil {
			return fmt.Errorf("account: cascade step failed: %w", err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM pet.account WHERE id = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("account: failed to delete account row: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("account: failed to commit cascade: %w", err)
	}
	return nil
}

// # Internal Helpers

// collectStrings runs a single-column query and gathers the values.
func (repo *PostgresRepository) collectStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := repo.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, rows.Err()
}

// scanOne maps a single-row result onto a User, translating absence.
func (repo *PostgresRepository) scanOne(row pgx.Row) (*auth.User, error) {
	var user auth.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("account: failed to scan account: %w", err)
	}
	return &user, nil
}
