// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamnguyen/petvault/internal/platform/apperr"
)

/*
TestConstructors verifies the code and status mapping of each error kind.
*/
func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *apperr.AppError
		wantCode   string
		wantStatus int
	}{
		{"not_found", apperr.NotFound("Pet"), "NOT_FOUND", http.StatusNotFound},
		{"unauthorized", apperr.Unauthorized("Authentication required"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"duplicate", apperr.Duplicate("Email is already registered"), "DUPLICATE", http.StatusBadRequest},
		{"validation", apperr.ValidationError("Validation failed"), "VALIDATION_ERROR", http.StatusBadRequest},
		{"internal", apperr.Internal(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantStatus, tt.err.HTTPStatus)
		})
	}
}

/*
TestNotFound_Message verifies the resource name lands in the message.
*/
func TestNotFound_Message(t *testing.T) {
	assert.Equal(t, "Pet not found", apperr.NotFound("Pet").Error())
	assert.Equal(t, "Document not found", apperr.NotFound("Document").Error())
}

/*
TestUnwrap verifies errors.As works through wrapping.
*/
func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := fmt.Errorf("service call: %w", apperr.Internal(cause))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, "INTERNAL_ERROR", ae.Code)

	// The original cause is still reachable
	assert.True(t, errors.Is(wrapped, cause))
}

/*
TestIsNotFound distinguishes absence from other failures.
*/
func TestIsNotFound(t *testing.T) {
	assert.True(t, apperr.IsNotFound(apperr.NotFound("Account")))
	assert.True(t, apperr.IsNotFound(fmt.Errorf("lookup: %w", apperr.NotFound("Pet"))))
	assert.False(t, apperr.IsNotFound(apperr.Unauthorized("nope")))
	assert.False(t, apperr.IsNotFound(errors.New("plain")))
}
