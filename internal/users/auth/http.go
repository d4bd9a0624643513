// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lamnguyen/petvault/internal/platform/constants"
	requestutil "github.com/lamnguyen/petvault/internal/platform/request"
	"github.com/lamnguyen/petvault/internal/platform/respond"
	"github.com/lamnguyen/petvault/internal/platform/validate"
)

// # HTTP Transport

// Handler exposes the authentication endpoints.
type Handler struct {
	service *Service

	// secureCookies marks session cookies Secure; enabled outside development
	// so tokens never travel over plain HTTP in production.
	secureCookies bool
}

// NewHandler wires the auth service into an HTTP handler.
func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{service: service, secureCookies: secureCookies}
}

// Routes returns the router for the authentication surface.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", handler.signup)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)

	return router
}

// # Request Payloads

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// # Endpoints

/*
signup registers a new account.

Endpoint: POST /api/signup

Returns:
  - 201: {"message": ..., "email": ...}
  - 400: Validation failure or duplicate email
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {

	// 1. Decode and validate input
	var input credentialsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)
	if input.Email != "" {
		validator.Email(FieldEmail, input.Email)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// 2. Create the account
	user, err := handler.service.Signup(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{
		constants.FieldMessage: "Account created successfully",
		FieldEmail:             user.Email,
	})
}

/*
login authenticates an account and issues the session cookie.

Endpoint: POST /api/login

Returns:
  - 200: {"message": ..., "email": ...} plus the session cookie
  - 401: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {

	// 1. Decode and validate input
	var input credentialsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// 2. Verify credentials and mint the session
	user, token, err := handler.service.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// 3. Hand the opaque token to the client
	handler.setSessionCookie(writer, token)

	respond.OK(writer, map[string]string{
		constants.FieldMessage: "Logged in successfully",
		FieldEmail:             user.Email,
	})
}

/*
logout revokes the current session and clears the cookie.

Endpoint: POST /api/logout

Always returns 200: an anonymous caller already has the state logout
produces, so there is nothing to fail.
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {

	// Revoke server-side state if a session cookie is present
	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil {
		if err := handler.service.Logout(request.Context(), cookie.Value); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	handler.clearSessionCookie(writer)

	respond.OK(writer, map[string]string{
		constants.FieldMessage: "Logged out successfully",
	})
}

// # Cookie Helpers

// setSessionCookie attaches the opaque session token as an HttpOnly cookie.
func (handler *Handler) setSessionCookie(writer http.ResponseWriter, token string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     constants.SessionCookiePath,
		MaxAge:   int(SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   handler.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie instructs the client to drop the session cookie.
func (handler *Handler) clearSessionCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   handler.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
