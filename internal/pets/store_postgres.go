// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

package pets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lamnguyen/petvault/internal/platform/apperr"
)

// PostgresRepository is the pgx-backed implementation of [Repository].
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository wires a connection pool into a pet repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var _ Repository = (*PostgresRepository)(nil)

// Create inserts a new pet row.
func (repo *PostgresRepository) Create(ctx context.Context, pet *Pet) error {
	query := `
		INSERT INTO pet.pet (id, name, breed, age, picturefilename, ownerid)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING createdat`

	// An absent picture is stored as NULL, not as an empty string.
	picture := sql.NullString{String: pet.PictureFilename, Valid: pet.PictureFilename != ""}

	err := repo.pool.QueryRow(ctx, query,
		pet.ID, pet.Name, pet.Breed, pet.Age, picture, pet.OwnerID,
	).Scan(&pet.CreatedAt)
	if err != nil {
		return fmt.Errorf("pets: failed to insert pet: %w", err)
	}

	return nil
}

// ListByOwner returns every pet the account owns, newest first.
func (repo *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	query := `
		SELECT id, name, breed, age, picturefilename, ownerid, createdat
		FROM pet.pet
		WHERE ownerid = $1
		ORDER BY createdat DESC, id DESC`

	rows, err := repo.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("pets: failed to list pets: %w", err)
	}
	defer rows.Close()

	pets := make([]Pet, 0)
	for rows.Next() {
		pet, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		pets = append(pets, *pet)
	}

	return pets, rows.Err()
}

// FindOwned returns the pet only if the account owns it.
//
// The ownership filter lives in the WHERE clause: a pet owned by someone
// else scans zero rows and surfaces as the same NotFound as true absence.
func (repo *PostgresRepository) FindOwned(ctx context.Context, ownerID, petID string) (*Pet, error) {
	query := `
		SELECT id, name, breed, age, picturefilename, ownerid, createdat
		FROM pet.pet
		WHERE id = $1 AND ownerid = $2`

	pet, err := scanPet(repo.pool.QueryRow(ctx, query, petID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Pet")
		}
		return nil, err
	}

	return pet, nil
}

// DocumentFilenames lists stored filenames of documents attached to a pet.
func (repo *PostgresRepository) DocumentFilenames(ctx context.Context, petID string) ([]string, error) {
	query := `
		SELECT filename
		FROM pet.document
		WHERE petid = $1`

	rows, err := repo.pool.Query(ctx, query, petID)
	if err != nil {
		return nil, fmt.Errorf("pets: failed to list document filenames: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("pets: failed to scan filename: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// DeleteCascade removes the pet's document rows and the pet row atomically.
func (repo *PostgresRepository) DeleteCascade(ctx context.Context, petID string) error {
	tx, err := repo.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pets: failed to begin cascade: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Documents first so the pet row's foreign key is never violated.
	if _, err := tx.Exec(ctx, `DELETE FROM pet.document WHERE petid = $1`, petID); err != nil {
		return fmt.Errorf("pets: failed to delete documents: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM pet.pet WHERE id = $1`, petID)
	if err != nil {
		return fmt.Errorf("pets: failed to delete pet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Pet")
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("pets: failed to commit cascade: %w", err)
	}
	return nil
}

// scanPet maps a row onto a Pet, translating the nullable picture column.
func scanPet(row pgx.Row) (*Pet, error) {
	var (
		pet     Pet
		picture sql.NullString
	)
	err := row.Scan(&pet.ID, &pet.Name, &pet.Breed, &pet.Age, &picture, &pet.OwnerID, &pet.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("pets: failed to scan pet: %w", err)
	}
	pet.PictureFilename = picture.String
	return &pet, nil
}
