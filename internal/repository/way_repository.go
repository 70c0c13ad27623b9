package repository

import (
	"context"

	"github.com/Talgatov/MentorWay/internal/models"
	"github.com/Talgatov/MentorWay/internal/schema"
	"github.com/Talgatov/MentorWay/internal/storage"
	"github.com/Talgatov/MentorWay/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
)

// WayRepository handles document operations for ways.
type WayRepository struct {
	store storage.Store
}

// NewWayRepository creates a new instance of WayRepository.
func NewWayRepository(store storage.Store) *WayRepository {
	return &WayRepository{store: store}
}

// GetByUuid fetches and validates one way document.
func (r *WayRepository) GetByUuid(ctx context.Context, uuid string) (*models.WayDTO, error) {
	raw, err := r.store.GetDocument(ctx, storage.WaysCollection, uuid)
	if err != nil {
		logger.Log.WithError(err).WithField("way_uuid", uuid).Error("Failed to fetch way")
		return nil, err
	}
	return schema.ParseWay(raw)
}

// GetAll fetches every way document. Documents failing validation are
// returned separately so the caller can isolate them instead of losing the
// whole collection.
func (r *WayRepository) GetAll(ctx context.Context) ([]*models.WayDTO, []ParseFailure, error) {
	raws, err := r.store.GetDocuments(ctx, storage.WaysCollection)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch ways")
		return nil, nil, err
	}
	return parseWays(raws)
}

// GetByUuids fetches many ways in one batched lookup. Missing uuids are
// simply absent from the result.
func (r *WayRepository) GetByUuids(ctx context.Context, uuids []string) ([]*models.WayDTO, []ParseFailure, error) {
	raws, err := r.store.GetDocumentsByUuids(ctx, storage.WaysCollection, uuids)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch ways by uuids")
		return nil, nil, err
	}
	return parseWays(raws)
}

func parseWays(raws []bson.M) ([]*models.WayDTO, []ParseFailure, error) {
	dtos := make([]*models.WayDTO, 0, len(raws))
	var failures []ParseFailure
	for _, raw := range raws {
		dto, err := schema.ParseWay(raw)
		if err != nil {
			failures = append(failures, ParseFailure{UUID: docUuid(raw), Err: err})
			continue
		}
		dtos = append(dtos, dto)
	}
	return dtos, failures, nil
}

// CreateInBatch enqueues creation of a new way document.
func (r *WayRepository) CreateInBatch(batch *storage.Batch, doc bson.M) {
	batch.Create(storage.WaysCollection, doc)
}

// UpdateInBatch enqueues a partial update of a way document.
func (r *WayRepository) UpdateInBatch(batch *storage.Batch, uuid string, partial bson.M) {
	batch.Update(storage.WaysCollection, uuid, partial)
}

// DeleteInBatch enqueues deletion of a way document.
func (r *WayRepository) DeleteInBatch(batch *storage.Batch, uuid string) {
	batch.Delete(storage.WaysCollection, uuid)
}
