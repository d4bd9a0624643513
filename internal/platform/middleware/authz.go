// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

package middleware

import (
	"context"
	"net/http"

	"github.com/lamnguyen/petvault/internal/platform/apperr"
	"github.com/lamnguyen/petvault/internal/platform/constants"
	"github.com/lamnguyen/petvault/internal/platform/ctxutil"
	"github.com/lamnguyen/petvault/internal/platform/respond"
	"github.com/lamnguyen/petvault/internal/platform/sec"
)

// SessionResolver turns an opaque session token into a caller identity.
//
// # Why an interface?
//
// Defining SessionResolver here decouples the middleware from the auth
// service implementation, allowing us to easily inject fakes during unit testing.
type SessionResolver interface {
	// ResolveSession returns the account ID the token maps to, or an error if
	// the token is unknown, expired, or revoked.
	ResolveSession(ctx context.Context, token string) (string, error)
}

// Authenticate resolves the session cookie into a [sec.CallerIdentity].
//
// # Flow
//  1. Look for the session cookie.
//  2. If absent, the request proceeds as anonymous.
//  3. If present, resolve the opaque token via [SessionResolver].
//  4. Inject [*sec.CallerIdentity] into the request context for downstream use.
//
// An unknown or expired token also proceeds as anonymous: the per-route
// [RequireAuth] gate decides whether anonymity is acceptable, so no resource
// information can leak before that decision.
func Authenticate(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Anonymous Access ───────────────────────────────────────────
			cookie, err := request.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Token Resolution ───────────────────────────────────────────
			userID, err := resolver.ResolveSession(request.Context(), cookie.Value)
			if err != nil {
				// Stale cookie: treat as anonymous rather than failing hard.
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			caller := &sec.CallerIdentity{UserID: userID, SessionToken: cookie.Value}
			ctx := ctxutil.WithCaller(request.Context(), caller)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.CallerIdentity] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized before any store call.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		caller := ctxutil.GetCaller(request.Context())
		if caller == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
