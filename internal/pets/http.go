// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

package pets

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lamnguyen/petvault/internal/platform/constants"
	requestutil "github.com/lamnguyen/petvault/internal/platform/request"
	"github.com/lamnguyen/petvault/internal/platform/respond"
	"github.com/lamnguyen/petvault/internal/platform/validate"
)

// # HTTP Transport

// Handler exposes the pet resource endpoints.
//
// All routes require an authenticated caller; the router mounts this handler
// behind the RequireAuth middleware.
type Handler struct {
	service *Service
}

// NewHandler wires the pet service into an HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for the pet surface.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Delete("/{petID}", handler.remove)

	return router
}

// # Endpoints

/*
list returns every pet the caller owns.

Endpoint: GET /api/pets

Returns:
  - 200: {"pets": [{"id", "name", "breed", "age", "picture", "created_at"}, ...]}
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	pets, err := handler.service.List(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]interface{}{
		"pets": pets,
	})
}

/*
create registers a new pet from a multipart form.

Endpoint: POST /api/pets
Content-Type: multipart/form-data

Form fields:
  - name: string (required)
  - breed: string (required)
  - age: integer >= 0 (required)
  - picture: file (optional; png, jpg, jpeg, gif)

Returns:
  - 201: {"message": ..., "pet": {...}}
  - 400: Validation failure
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// 1. Parse the multipart form within the upload cap
	if err := request.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
		respond.Error(writer, request, validate.RequiredError("form", "Invalid multipart form data"))
		return
	}

	name := request.FormValue(FieldName)
	breed := request.FormValue(FieldBreed)
	rawAge := request.FormValue(FieldAge)

	// 2. Validate the scalar fields
	validator := &validate.Validator{}
	validator.Required(FieldName, name).
		Required(FieldBreed, breed).
		Required(FieldAge, rawAge)

	age := 0
	if rawAge != "" {
		parsed, parseErr := strconv.Atoi(rawAge)
		if parseErr != nil {
			validator.Custom(FieldAge, true, "Must be an integer")
		} else {
			age = parsed
			validator.NonNegativeInt(FieldAge, age)
		}
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// 3. Optional picture file
	picture, err := requestutil.FormUpload(request, FieldPicture)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// 4. Create the record
	pet, err := handler.service.Create(request.Context(), userID, CreateInput{
		Name:  name,
		Breed: breed,
		Age:   age,
	}, picture)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]interface{}{
		constants.FieldMessage: "Pet added successfully",
		"pet":                  pet,
	})
}

/*
remove deletes a pet together with its documents and stored files.

Endpoint: DELETE /api/pets/{petID}

Returns:
  - 200: {"message": ...}
  - 404: Unknown pet, or a pet owned by another account
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	petID := requestutil.Param(request, "petID")

	if err := handler.service.Delete(request.Context(), userID, petID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		constants.FieldMessage: "Pet deleted successfully",
	})
}
