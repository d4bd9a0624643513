// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// SessionTTL is the duration an opaque session token remains valid.
	// Seven days balances convenience against the exposure of a leaked cookie.
	SessionTTL = 7 * 24 * time.Hour

	// SessionTokenLength is the byte length of the random session token.
	SessionTokenLength = 32
)
