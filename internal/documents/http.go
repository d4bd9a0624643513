// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

package documents

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lamnguyen/petvault/internal/pets"
	"github.com/lamnguyen/petvault/internal/platform/constants"
	requestutil "github.com/lamnguyen/petvault/internal/platform/request"
	"github.com/lamnguyen/petvault/internal/platform/respond"
	"github.com/lamnguyen/petvault/internal/platform/validate"
)

// # HTTP Transport

// PetLister provides the caller's pets for the upload target selection.
// Satisfied by pets.Service.
type PetLister interface {
	List(ctx context.Context, ownerID string) ([]pets.Pet, error)
}

// Handler exposes the document resource endpoints.
//
// All routes require an authenticated caller; the router mounts this handler
// behind the RequireAuth middleware.
type Handler struct {
	service *Service
	pets    PetLister
}

// NewHandler wires the document service and pet lister into a handler.
func NewHandler(service *Service, pets PetLister) *Handler {
	return &Handler{service: service, pets: pets}
}

// Routes returns the router for the document surface.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/pets", handler.listPets)
	router.Post("/", handler.upload)
	router.Get("/pet/{petID}", handler.listForPet)
	router.Delete("/{documentID}", handler.remove)

	return router
}

// # Response Payloads

// petOption is the slim pet projection shown when picking an upload target.
type petOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Breed string `json:"breed"`
}

// # Endpoints

/*
listPets returns the caller's pets as upload target options.

Endpoint: GET /api/documents/pets

Returns:
  - 200: {"pets": [{"id", "name", "breed"}, ...]}
*/
func (handler *Handler) listPets(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	owned, err := handler.pets.List(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	options := make([]petOption, 0, len(owned))
	for _, pet := range owned {
		options = append(options, petOption{ID: pet.ID, Name: pet.Name, Breed: pet.Breed})
	}

	respond.OK(writer, map[string]interface{}{
		"pets": options,
	})
}

/*
upload attaches a file to one of the caller's pets.

Endpoint: POST /api/documents
Content-Type: multipart/form-data

Form fields:
  - pet_id: string (required)
  - file: file (required; pdf, doc, docx, jpg, jpeg, png, txt)

Returns:
  - 201: {"message": ..., "document": {...}}
  - 400: Missing or disallowed file
  - 404: Unknown or foreign pet
*/
func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
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

	petID := request.FormValue(FieldPetID)
	validator := &validate.Validator{}
	validator.Required(FieldPetID, petID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// 2. Extract the file part
	upload, err := requestutil.FormUpload(request, FieldFile)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// 3. Store and persist
	document, err := handler.service.Upload(request.Context(), userID, petID, upload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]interface{}{
		constants.FieldMessage: "Document uploaded successfully",
		"document":             document,
	})
}

/*
listForPet returns a pet's name and attached documents.

Endpoint: GET /api/documents/pet/{petID}

Returns:
  - 200: {"pet_name": ..., "documents": [...]}
  - 404: Unknown or foreign pet
*/
func (handler *Handler) listForPet(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	petID := requestutil.Param(request, "petID")

	petName, documents, err := handler.service.ListForPet(request.Context(), userID, petID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]interface{}{
		"pet_name":  petName,
		"documents": documents,
	})
}

/*
remove deletes a document and its stored file.

Endpoint: DELETE /api/documents/{documentID}

Returns:
  - 200: {"message": ...}
  - 404: Unknown document, or a document owned by another account
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	documentID := requestutil.Param(request, "documentID")

	if err := handler.service.Delete(request.Context(), userID, documentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		constants.FieldMessage: "Document deleted successfully",
	})
}
