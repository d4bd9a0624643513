// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lamnguyen/petvault/internal/platform/constants"
	requestutil "github.com/lamnguyen/petvault/internal/platform/request"
	"github.com/lamnguyen/petvault/internal/platform/respond"
	"github.com/lamnguyen/petvault/internal/platform/validate"
	"github.com/lamnguyen/petvault/internal/users/auth"
)

// # HTTP Transport

// Handler exposes the account management endpoints.
//
// Every route below requires an authenticated caller; the router mounts this
// handler behind the RequireAuth middleware.
type Handler struct {
	service  *Service
	sessions SessionRevoker
}

// NewHandler wires the account service and session revoker into a handler.
func NewHandler(service *Service, sessions SessionRevoker) *Handler {
	return &Handler{service: service, sessions: sessions}
}

// Routes returns the router for the account surface.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/info", handler.info)
	router.Put("/update-email", handler.updateEmail)
	router.Put("/change-password", handler.changePassword)
	router.Delete("/delete-account", handler.deleteAccount)

	return router
}

// # Request Payloads

type updateEmailRequest struct {
	NewEmail string `json:"new_email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// # Endpoints

/*
info returns the caller's account profile.

Endpoint: GET /api/user/info

Returns:
  - 200: {"email": ...}
*/
func (handler *Handler) info(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Info(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		auth.FieldEmail: user.Email,
	})
}

/*
updateEmail changes the caller's email address.

Endpoint: PUT /api/user/update-email

Returns:
  - 200: {"message": ...}
  - 400: Invalid or duplicate email
*/
func (handler *Handler) updateEmail(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// 1. Decode and validate input
	var input updateEmailRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldNewEmail, input.NewEmail)
	if input.NewEmail != "" {
		validator.Email(auth.FieldNewEmail, input.NewEmail)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// 2. Apply the change
	if err := handler.service.UpdateEmail(request.Context(), userID, input.NewEmail); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		constants.FieldMessage: "Email updated successfully",
	})
}

/*
changePassword replaces the caller's password.

Endpoint: PUT /api/user/change-password

Returns:
  - 200: {"message": ...}
  - 401: Current password incorrect
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// 1. Decode and validate input
	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldCurrentPassword, input.CurrentPassword).
		Required(auth.FieldNewPassword, input.NewPassword)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// 2. Verify and swap the credential
	if err := handler.service.ChangePassword(request.Context(), userID, input.CurrentPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		constants.FieldMessage: "Password changed successfully",
	})
}

/*
deleteAccount removes the caller's account, pets, documents, and files.

Endpoint: DELETE /api/user/delete-account

Flow:
 1. Run the full cascade (files best-effort, rows atomic).
 2. Revoke the session that authorized this request.
 3. Clear the session cookie.

Returns:
  - 200: {"message": ...}
*/
func (handler *Handler) deleteAccount(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredCaller(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// 1. Cascade
	if err := handler.service.Delete(request.Context(), caller.UserID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// 2. The session's account no longer exists; revoke it server-side
	if err := handler.sessions.Logout(request.Context(), caller.SessionToken); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// 3. Drop the cookie client-side
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	respond.OK(writer, map[string]string{
		constants.FieldMessage: "Account deleted successfully",
	})
}
