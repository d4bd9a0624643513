// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

/*
Package auth implements the user identity and session management layer.

It defines the core account entity and the logic for signup, login, logout,
and opaque session-token resolution.

# Architecture

This layer is the "Truth" of the system. Every ownership-scoped resource in
PetVault hangs off the account identity defined here.
*/
package auth

import (
	"time"
)

// # Domain Entities

// User represents a registered PetVault account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldNewEmail        = "new_email"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldMessage         = "message"
)
