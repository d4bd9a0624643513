// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lamnguyen/petvault/internal/platform/apperr"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// PostgresUserRepository is the pgx-backed implementation of [UserRepository].
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository wires a connection pool into a user repository.
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create inserts a new account row.

Parameters:
  - ctx: context.Context
  - user: *User (ID, Email, and PasswordHash must be set)

Returns:
  - error: apperr.Duplicate if the email is already registered
*/
func (repo *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO pet.account (id, email, passwordhash)
		VALUES ($1, $2, $3)
		RETURNING createdat, updatedat`

	err := repo.pool.QueryRow(ctx, query, user.ID, user.Email, user.PasswordHash).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		// Map the unique-email constraint onto the domain duplicate error.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperr.Duplicate("Email is already registered")
		}
		return fmt.Errorf("auth: failed to insert account: %w", err)
	}

	return nil
}

// FindByID returns the account with the given ID, or apperr.NotFound.
func (repo *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, email, passwordhash, createdat, updatedat
		FROM pet.account
		WHERE id = $1`

	return repo.scanOne(repo.pool.QueryRow(ctx, query, id))
}

// FindByEmail returns the account registered under the email, or apperr.NotFound.
func (repo *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, email, passwordhash, createdat, updatedat
		FROM pet.account
		WHERE email = $1`

	return repo.scanOne(repo.pool.QueryRow(ctx, query, email))
}

// scanOne maps a single-row result onto a User, translating absence.
func (repo *PostgresUserRepository) scanOne(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("auth: failed to scan account: %w", err)
	}
	return &user, nil
}
