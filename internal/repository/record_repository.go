package repository

import (
	"context"

	"github.com/Talgatov/MentorWay/internal/models"
	"github.com/Talgatov/MentorWay/internal/schema"
	"github.com/Talgatov/MentorWay/internal/storage"
	"github.com/Talgatov/MentorWay/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
)

// CollectionForKind maps a record kind to its storage collection.
func CollectionForKind(kind models.RecordKind) string {
	switch kind {
	case models.RecordJobDone:
		return storage.JobsDoneCollection
	case models.RecordPlan:
		return storage.PlansCollection
	case models.RecordProblem:
		return storage.ProblemsCollection
	default:
		return storage.MentorCommentsCollection
	}
}

// RecordRepository handles document operations for one of the four leaf
// record collections. All four share the same document shape, so a single
// repository parameterized by kind serves them all.
type RecordRepository struct {
	store      storage.Store
	collection string
}

// NewRecordRepository creates a repository bound to the collection of the
// given kind.
func NewRecordRepository(store storage.Store, kind models.RecordKind) *RecordRepository {
	return &RecordRepository{store: store, collection: CollectionForKind(kind)}
}

// GetByUuid fetches and validates one leaf record.
func (r *RecordRepository) GetByUuid(ctx context.Context, uuid string) (*models.RecordDTO, error) {
	raw, err := r.store.GetDocument(ctx, r.collection, uuid)
	if err != nil {
		logger.Log.WithError(err).WithFields(map[string]interface{}{
			"collection":  r.collection,
			"record_uuid": uuid,
		}).Error("Failed to fetch record")
		return nil, err
	}
	return schema.ParseRecord(raw)
}

// GetByUuids fetches many leaf records in one batched lookup.
func (r *RecordRepository) GetByUuids(ctx context.Context, uuids []string) ([]*models.RecordDTO, []ParseFailure, error) {
	raws, err := r.store.GetDocumentsByUuids(ctx, r.collection, uuids)
	if err != nil {
		logger.Log.WithError(err).WithField("collection", r.collection).Error("Failed to fetch records by uuids")
		return nil, nil, err
	}

	dtos := make([]*models.RecordDTO, 0, len(raws))
	var failures []ParseFailure
	for _, raw := range raws {
		dto, err := schema.ParseRecord(raw)
		if err != nil {
			failures = append(failures, ParseFailure{UUID: docUuid(raw), Err: err})
			continue
		}
		dtos = append(dtos, dto)
	}
	return dtos, failures, nil
}

// CreateInBatch enqueues creation of a new leaf record.
func (r *RecordRepository) CreateInBatch(batch *storage.Batch, doc bson.M) {
	batch.Create(r.collection, doc)
}

// UpdateInBatch enqueues a partial update of a leaf record.
func (r *RecordRepository) UpdateInBatch(batch *storage.Batch, uuid string, partial bson.M) {
	batch.Update(r.collection, uuid, partial)
}

// DeleteInBatch enqueues deletion of a leaf record.
func (r *RecordRepository) DeleteInBatch(batch *storage.Batch, uuid string) {
	batch.Delete(r.collection, uuid)
}
