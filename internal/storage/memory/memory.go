// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

/*
Package memory provides an in-memory implementation of every PetVault
repository over a single shared state.

It exists for tests and local experiments: because all three domains share
one [DB], cross-domain cascades (deleting an account removes its pets and
documents) behave exactly like the transactional Postgres implementation.

The implementation is guarded by a single mutex; it is not meant to be fast,
only correct.
*/
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lamnguyen/petvault/internal/documents"
	"github.com/lamnguyen/petvault/internal/pets"
	"github.com/lamnguyen/petvault/internal/platform/apperr"
	"github.com/lamnguyen/petvault/internal/users/account"
	"github.com/lamnguyen/petvault/internal/users/auth"
)

// DB is the shared in-memory state behind all repository views.
type DB struct {
	mu        sync.RWMutex
	accounts  map[string]auth.User          // keyed by account ID
	emails    map[string]string             // email -> account ID
	pets      map[string]pets.Pet           // keyed by pet ID
	documents map[string]documents.Document // keyed by document ID
	sequence  int64                         // monotonic tiebreaker for timestamps
}

// NewDB returns an empty in-memory database.
func NewDB() *DB {
	return &DB{
		accounts:  make(map[string]auth.User),
		emails:    make(map[string]string),
		pets:      make(map[string]pets.Pet),
		documents: make(map[string]documents.Document),
	}
}

// Users returns the [auth.UserRepository] view.
func (db *DB) Users() auth.UserRepository { return &userRepo{db: db} }

// Accounts returns the [account.Repository] view.
func (db *DB) Accounts() account.Repository { return &accountRepo{db: db} }

// Pets returns the [pets.Repository] view.
func (db *DB) Pets() pets.Repository { return &petRepo{db: db} }

// Documents returns the [documents.Repository] view.
func (db *DB) Documents() documents.Repository { return &docRepo{db: db} }

// now returns a strictly increasing timestamp so "newest first" orderings
// are deterministic even within a single nanosecond tick.
func (db *DB) now() time.Time {
	db.sequence++
	return time.Unix(0, db.sequence).UTC()
}

// # User Repository View

type userRepo struct{ db *DB }

func (repo *userRepo) Create(_ context.Context, user *auth.User) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, taken := repo.db.emails[user.Email]; taken {
		return apperr.Duplicate("Email is already registered")
	}

	now := repo.db.now()
	user.CreatedAt = now
	user.UpdatedAt = now
	repo.db.accounts[user.ID] = *user
	repo.db.emails[user.Email] = user.ID
	return nil
}

func (repo *userRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.findAccountByID(id)
}

func (repo *userRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.findAccountByEmail(email)
}

// # Account Repository View

type accountRepo struct{ db *DB }

func (repo *accountRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.findAccountByID(id)
}

func (repo *accountRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.findAccountByEmail(email)
}

func (repo *accountRepo) UpdateEmail(_ context.Context, id, email string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	user, ok := repo.db.accounts[id]
	if !ok {
		return apperr.NotFound("Account")
	}
	if ownerID, taken := repo.db.emails[email]; taken && ownerID != id {
		return apperr.Duplicate("Email is already registered")
	}

	delete(repo.db.emails, user.Email)
	user.Email = email
	user.UpdatedAt = repo.db.now()
	repo.db.accounts[id] = user
	repo.db.emails[email] = id
	return nil
}

func (repo *accountRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	user, ok := repo.db.accounts[id]
	if !ok {
		return apperr.NotFound("Account")
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = repo.db.now()
	repo.db.accounts[id] = user
	return nil
}

func (repo *accountRepo) ListAssetRefs(_ context.Context, ownerID string) (*account.AssetRefs, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	refs := &account.AssetRefs{}
	for _, pet := range repo.db.pets {
		if pet.OwnerID != ownerID {
			continue
		}
		if pet.PictureFilename != "" {
			refs.Pictures = append(refs.Pictures, pet.PictureFilename)
		}
		for _, document := range repo.db.documents {
			if document.PetID == pet.ID {
				refs.Documents = append(refs.Documents, document.Filename)
			}
		}
	}
	return refs, nil
}

func (repo *accountRepo) DeleteCascade(_ context.Context, ownerID string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	user, ok := repo.db.accounts[ownerID]
	if !ok {
		return apperr.NotFound("Account")
	}

	for petID, pet := range repo.db.pets {
		if pet.OwnerID != ownerID {
			continue
		}
		for docID, document := range repo.db.documents {
			if document.PetID == petID {
				delete(repo.db.documents, docID)
			}
		}
		delete(repo.db.pets, petID)
	}

	delete(repo.db.emails, user.Email)
	delete(repo.db.accounts, ownerID)
	return nil
}

// # Pet Repository View

type petRepo struct{ db *DB }

func (repo *petRepo) Create(_ context.Context, pet *pets.Pet) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	pet.CreatedAt = repo.db.now()
	repo.db.pets[pet.ID] = *pet
	return nil
}

func (repo *petRepo) ListByOwner(_ context.Context, ownerID string) ([]pets.Pet, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	owned := make([]pets.Pet, 0)
	for _, pet := range repo.db.pets {
		if pet.OwnerID == ownerID {
			owned = append(owned, pet)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	return owned, nil
}

func (repo *petRepo) FindOwned(_ context.Context, ownerID, petID string) (*pets.Pet, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	pet, ok := repo.db.pets[petID]
	if !ok || pet.OwnerID != ownerID {
		return nil, apperr.NotFound("Pet")
	}
	return &pet, nil
}

func (repo *petRepo) DocumentFilenames(_ context.Context, petID string) ([]string, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var names []string
	for _, document := range repo.db.documents {
		if document.PetID == petID {
			names = append(names, document.Filename)
		}
	}
	return names, nil
}

func (repo *petRepo) DeleteCascade(_ context.Context, petID string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.pets[petID]; !ok {
		return apperr.NotFound("Pet")
	}
	for docID, document := range repo.db.documents {
		if document.PetID == petID {
			delete(repo.db.documents, docID)
		}
	}
	delete(repo.db.pets, petID)
	return nil
}

// # Document Repository View

type docRepo struct{ db *DB }

func (repo *docRepo) Create(_ context.Context, document *documents.Document) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	document.UploadedAt = repo.db.now()
	repo.db.documents[document.ID] = *document
	return nil
}

func (repo *docRepo) ListByPet(_ context.Context, petID string) ([]documents.Document, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	attached := make([]documents.Document, 0)
	for _, document := range repo.db.documents {
		if document.PetID == petID {
			attached = append(attached, document)
		}
	}
	sort.Slice(attached, func(i, j int) bool {
		return attached[i].UploadedAt.After(attached[j].UploadedAt)
	})
	return attached, nil
}

func (repo *docRepo) FindOwned(_ context.Context, ownerID, documentID string) (*documents.Document, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	document, ok := repo.db.documents[documentID]
	if !ok || document.OwnerID != ownerID {
		return nil, apperr.NotFound("Document")
	}
	return &document, nil
}

func (repo *docRepo) Delete(_ context.Context, documentID string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.documents[documentID]; !ok {
		return apperr.NotFound("Document")
	}
	delete(repo.db.documents, documentID)
	return nil
}

// # Shared Lookups (callers must hold the lock)

func (db *DB) findAccountByID(id string) (*auth.User, error) {
	user, ok := db.accounts[id]
	if !ok {
		return nil, apperr.NotFound("Account")
	}
	return &user, nil
}

func (db *DB) findAccountByEmail(email string) (*auth.User, error) {
	id, ok := db.emails[email]
	if !ok {
		return nil, apperr.NotFound("Account")
	}
	return db.findAccountByID(id)
}
