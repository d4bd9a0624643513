// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

// Package sec provides cryptographic primitives and the caller identity type.
//
// # Architecture
//
// This package isolates security-sensitive code (password hashing, session
// token generation) from the domain logic. It is injected into the Application
// layer via small interfaces so domain packages never touch crypto directly.
package sec

// CallerIdentity is the resolved identity of the current request.
//
// It is produced once per request by the session-cookie middleware and
// threaded through the context. Every ownership-scoped store call derives its
// owner id from this value, never from the request body.
type CallerIdentity struct {
	// UserID is the account id the session token resolved to.
	UserID string

	// SessionToken is the raw opaque token presented by the client. Handlers
	// need it to revoke the session (logout, account deletion). It is never
	// serialized.
	SessionToken string
}
