package repository

import (
	"context"

	"github.com/Talgatov/MentorWay/internal/models"
	"github.com/Talgatov/MentorWay/internal/schema"
	"github.com/Talgatov/MentorWay/internal/storage"
	"github.com/Talgatov/MentorWay/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
)

// DayReportRepository handles document operations for day reports.
type DayReportRepository struct {
	store storage.Store
}

// NewDayReportRepository creates a new instance of DayReportRepository.
func NewDayReportRepository(store storage.Store) *DayReportRepository {
	return &DayReportRepository{store: store}
}

// GetByUuid fetches and validates one day report document.
func (r *DayReportRepository) GetByUuid(ctx context.Context, uuid string) (*models.DayReportDTO, error) {
	raw, err := r.store.GetDocument(ctx, storage.DayReportsCollection, uuid)
	if err != nil {
		logger.Log.WithError(err).WithField("day_report_uuid", uuid).Error("Failed to fetch day report")
		return nil, err
	}
	return schema.ParseDayReport(raw)
}

// GetByUuids fetches many day reports in one batched lookup.
func (r *DayReportRepository) GetByUuids(ctx context.Context, uuids []string) ([]*models.DayReportDTO, []ParseFailure, error) {
	raws, err := r.store.GetDocumentsByUuids(ctx, storage.DayReportsCollection, uuids)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch day reports by uuids")
		return nil, nil, err
	}

	dtos := make([]*models.DayReportDTO, 0, len(raws))
	var failures []ParseFailure
	for _, raw := range raws {
		dto, err := schema.ParseDayReport(raw)
		if err != nil {
			failures = append(failures, ParseFailure{UUID: docUuid(raw), Err: err})
			continue
		}
		dtos = append(dtos, dto)
	}
	return dtos, failures, nil
}

// CreateInBatch enqueues creation of a new day report document.
func (r *DayReportRepository) CreateInBatch(batch *storage.Batch, doc bson.M) {
	batch.Create(storage.DayReportsCollection, doc)
}

// UpdateInBatch enqueues a partial update of a day report document.
func (r *DayReportRepository) UpdateInBatch(batch *storage.Batch, uuid string, partial bson.M) {
	batch.Update(storage.DayReportsCollection, uuid, partial)
}

// DeleteInBatch enqueues deletion of a day report document.
func (r *DayReportRepository) DeleteInBatch(batch *storage.Batch, uuid string) {
	batch.Delete(storage.DayReportsCollection, uuid)
}
