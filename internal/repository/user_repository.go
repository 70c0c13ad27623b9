package repository

import (
	"context"

	"github.com/Talgatov/MentorWay/internal/models"
	"github.com/Talgatov/MentorWay/internal/schema"
	"github.com/Talgatov/MentorWay/internal/storage"
	"github.com/Talgatov/MentorWay/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository handles document operations for users.
type UserRepository struct {
	store storage.Store
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(store storage.Store) *UserRepository {
	return &UserRepository{store: store}
}

// GetByUuid fetches and validates one user document.
func (r *UserRepository) GetByUuid(ctx context.Context, uuid string) (*models.UserDTO, error) {
	raw, err := r.store.GetDocument(ctx, storage.UsersCollection, uuid)
	if err != nil {
		logger.Log.WithError(err).WithField("user_uuid", uuid).Error("Failed to fetch user")
		return nil, err
	}
	return schema.ParseUser(raw)
}

// GetByEmail scans for the user with the given email. Used by
// authentication only; everything else resolves users by uuid.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.UserDTO, error) {
	raws, err := r.store.GetDocuments(ctx, storage.UsersCollection)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch users")
		return nil, err
	}
	for _, raw := range raws {
		if raw[models.UserFieldEmail] == email {
			return schema.ParseUser(raw)
		}
	}
	return nil, storage.ErrNotFound
}

// GetAll fetches every user document.
func (r *UserRepository) GetAll(ctx context.Context) ([]*models.UserDTO, []ParseFailure, error) {
	raws, err := r.store.GetDocuments(ctx, storage.UsersCollection)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch users")
		return nil, nil, err
	}
	return parseUsers(raws)
}

// GetByUuids fetches many users in one batched lookup. Missing uuids are
// simply absent from the result; the caller decides whether that makes a
// dangling reference fatal.
func (r *UserRepository) GetByUuids(ctx context.Context, uuids []string) ([]*models.UserDTO, []ParseFailure, error) {
	raws, err := r.store.GetDocumentsByUuids(ctx, storage.UsersCollection, uuids)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch users by uuids")
		return nil, nil, err
	}
	return parseUsers(raws)
}

func parseUsers(raws []bson.M) ([]*models.UserDTO, []ParseFailure, error) {
	dtos := make([]*models.UserDTO, 0, len(raws))
	var failures []ParseFailure
	for _, raw := range raws {
		dto, err := schema.ParseUser(raw)
		if err != nil {
			failures = append(failures, ParseFailure{UUID: docUuid(raw), Err: err})
			continue
		}
		dtos = append(dtos, dto)
	}
	return dtos, failures, nil
}

// CreateInBatch enqueues creation of a new user document.
func (r *UserRepository) CreateInBatch(batch *storage.Batch, doc bson.M) {
	batch.Create(storage.UsersCollection, doc)
}

// UpdateInBatch enqueues a partial update of a user document.
func (r *UserRepository) UpdateInBatch(batch *storage.Batch, uuid string, partial bson.M) {
	batch.Update(storage.UsersCollection, uuid, partial)
}
