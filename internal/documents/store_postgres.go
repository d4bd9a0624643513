// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

package documents

import (
	"context"
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

// NewPostgresRepository wires a connection pool into a document repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var _ Repository = (*PostgresRepository)(nil)

// Create inserts a new document metadata row.
func (repo *PostgresRepository) Create(ctx context.Context, document *Document) error {
	query := `
		INSERT INTO pet.document (id, filename, originalfilename, filetype, petid, ownerid)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING uploadedat`

	err := repo.pool.QueryRow(ctx, query,
		document.ID, document.Filename, document.OriginalFilename,
		document.FileType, document.PetID, document.OwnerID,
	).Scan(&document.UploadedAt)
	if err != nil {
		return fmt.Errorf("documents: failed to insert document: %w", err)
	}

	return nil
}

// ListByPet returns every document attached to a pet, newest first.
func (repo *PostgresRepository) ListByPet(ctx context.Context, petID string) ([]Document, error) {
	query := `
		SELECT id, filename, originalfilename, filetype, petid, ownerid, uploadedat
		FROM pet.document
		WHERE petid = $1
		ORDER BY uploadedat DESC, id DESC`

	rows, err := repo.pool.Query(ctx, query, petID)
	if err != nil {
		return nil, fmt.Errorf("documents: failed to list documents: %w", err)
	}
	defer rows.Close()

	documents := make([]Document, 0)
	for rows.Next() {
		var document Document
		if err := scanDocument(rows, &document); err != nil {
			return nil, err
		}
		documents = append(documents, document)
	}

	return documents, rows.Err()
}

// FindOwned returns the document only if the account owns it.
//
// The ownerid column is denormalized onto the document row precisely so this
// check never needs a join.
func (repo *PostgresRepository) FindOwned(ctx context.Context, ownerID, documentID string) (*Document, error) {
	query := `
		SELECT id, filename, originalfilename, filetype, petid, ownerid, uploadedat
		FROM pet.document
		WHERE id = $1 AND ownerid = $2`

	var document Document
	err := scanDocument(repo.pool.QueryRow(ctx, query, documentID, ownerID), &document)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Document")
		}
		return nil, err
	}

	return &document, nil
}

// Delete removes a single document row.
func (repo *PostgresRepository) Delete(ctx context.Context, documentID string) error {
	tag, err := repo.pool.Exec(ctx, `DELETE FROM pet.document WHERE id = $1`, documentID)
	if err != nil {
		return fmt.Errorf("documents: failed to delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Document")
	}
	return nil
}

// scanDocument maps a row onto a Document.
func scanDocument(row pgx.Row, document *Document) error {
	err := row.Scan(
		&document.ID, &document.Filename, &document.OriginalFilename,
		&document.FileType, &document.PetID, &document.OwnerID, &document.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		return fmt.Errorf("documents: failed to scan document: %w", err)
	}
	return nil
}
