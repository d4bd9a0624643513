// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lamnguyen/petvault/internal/platform/apperr"
	"github.com/lamnguyen/petvault/internal/platform/assets"
	"github.com/lamnguyen/petvault/internal/platform/ctxutil"
	"github.com/lamnguyen/petvault/internal/platform/sec"
	"github.com/lamnguyen/petvault/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Caller extracts the resolved caller identity from the request context.

Returns nil if the request is anonymous.
*/
func Caller(request *http.Request) *sec.CallerIdentity {
	return ctxutil.GetCaller(request.Context())
}

/*
RequiredCaller ensures the request is authenticated and returns the caller identity.

Returns:
  - *sec.CallerIdentity: The authenticated caller
  - error: apperr.Unauthorized if the request is anonymous
*/
func RequiredCaller(request *http.Request) (*sec.CallerIdentity, error) {

	// Get the resolved caller identity
	caller := ctxutil.GetCaller(request.Context())

	// If the request carries no valid session, return an error
	if caller == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return caller, nil
}

/*
RequiredUserID returns the account ID of the currently logged-in user.

Returns:
  - string: Account UUID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {

	// Get the resolved caller identity
	caller, err := RequiredCaller(request)

	// If the request carries no valid session, return an error
	if err != nil {
		return "", err
	}

	return caller.UserID, nil
}

/*
FormUpload extracts a named file from a parsed multipart form.

The request must already have gone through ParseMultipartForm.

Returns:
  - *assets.Upload: The uploaded file, or nil when the field was not submitted
  - error: apperr validation error when the part exists but cannot be read
*/
func FormUpload(request *http.Request, field string) (*assets.Upload, error) {
	file, header, err := request.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, validate.RequiredError(field, "Invalid file upload")
	}

	return &assets.Upload{
		OriginalFilename: header.Filename,
		Content:          file,
		Size:             header.Size,
	}, nil
}
