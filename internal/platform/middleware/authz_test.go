// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamnguyen/petvault/internal/platform/constants"
	"github.com/lamnguyen/petvault/internal/platform/ctxutil"
	"github.com/lamnguyen/petvault/internal/platform/middleware"
)

// fakeResolver maps a single known token to a user ID.
type fakeResolver struct {
	token  string
	userID string
}

func (resolver *fakeResolver) ResolveSession(_ context.Context, token string) (string, error) {
	if token == resolver.token {
		return resolver.userID, nil
	}
	return "", errors.New("unknown session")
}

// echoCaller records whether a caller identity reached the final handler.
func echoCaller(gotUserID *string) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if caller := ctxutil.GetCaller(request.Context()); caller != nil {
			*gotUserID = caller.UserID
		}
		writer.WriteHeader(http.StatusOK)
	})
}

/*
TestAuthenticate covers cookie resolution: valid, missing, and stale tokens.
*/
func TestAuthenticate(t *testing.T) {
	resolver := &fakeResolver{token: "valid-token", userID: "user-42"}

	tests := []struct {
		name       string
		cookie     string
		wantUserID string
	}{
		{"valid_token", "valid-token", "user-42"},
		{"no_cookie", "", ""},
		{"stale_token", "revoked-token", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID string
			handler := middleware.Authenticate(resolver)(echoCaller(&gotUserID))

			request := httptest.NewRequest(http.MethodGet, "/api/pets", nil)
			if tt.cookie != "" {
				request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: tt.cookie})
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			// A bad cookie degrades to anonymous, it never blocks here
			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, tt.wantUserID, gotUserID)
		})
	}
}

/*
TestRequireAuth verifies the gate blocks anonymous requests with 401 before
the downstream handler runs.
*/
func TestRequireAuth(t *testing.T) {
	resolver := &fakeResolver{token: "valid-token", userID: "user-42"}

	t.Run("anonymous_blocked", func(t *testing.T) {
		reached := false
		handler := middleware.Authenticate(resolver)(middleware.RequireAuth(
			http.HandlerFunc(func(http.ResponseWriter, *http.Request) { reached = true }),
		))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/pets", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.False(t, reached)
	})

	t.Run("authenticated_passes", func(t *testing.T) {
		reached := false
		handler := middleware.Authenticate(resolver)(middleware.RequireAuth(
			http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
				reached = true
				writer.WriteHeader(http.StatusOK)
			}),
		))

		request := httptest.NewRequest(http.MethodGet, "/api/pets", nil)
		request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "valid-token"})

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.True(t, reached)
	})
}
