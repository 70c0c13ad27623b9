package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Talgatov/MentorWay/internal/convert"
	"github.com/Talgatov/MentorWay/internal/models"
	"github.com/Talgatov/MentorWay/internal/repository"
	"github.com/Talgatov/MentorWay/internal/storage"
	"github.com/Talgatov/MentorWay/pkg/logger"
	"github.com/Talgatov/MentorWay/pkg/safemap"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

var recordKinds = []models.RecordKind{
	models.RecordJobDone,
	models.RecordPlan,
	models.RecordProblem,
	models.RecordMentorComment,
}

// DayReportService is the access layer for day reports and their four leaf
// record lists.
type DayReportService struct {
	store       storage.Store
	reportRepo  *repository.DayReportRepository
	wayRepo     *repository.WayRepository
	recordRepos map[models.RecordKind]*repository.RecordRepository
}

// NewDayReportService creates a new instance of DayReportService.
func NewDayReportService(store storage.Store, reportRepo *repository.DayReportRepository, wayRepo *repository.WayRepository) *DayReportService {
	recordRepos := make(map[models.RecordKind]*repository.RecordRepository, len(recordKinds))
	for _, kind := range recordKinds {
		recordRepos[kind] = repository.NewRecordRepository(store, kind)
	}
	return &DayReportService{
		store:       store,
		reportRepo:  reportRepo,
		wayRepo:     wayRepo,
		recordRepos: recordRepos,
	}
}

// GetDayReports hydrates the given report uuids. Leaf lookups are batched:
// one multi-get per record collection across all reports, not one per
// report. A leaf uuid that resolves to nothing is dropped from its list
// with a warning; it never fails the report.
func (s *DayReportService) GetDayReports(ctx context.Context, uuids []string) ([]*models.DayReport, error) {
	dtos, failures, err := s.reportRepo.GetByUuids(ctx, uuids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch day reports: %w", err)
	}
	for _, failure := range failures {
		logger.Log.WithError(failure.Err).WithField("day_report_uuid", failure.UUID).Warn("Skipping invalid day report")
	}
	return s.hydrateReports(ctx, dtos)
}

// GetDayReport hydrates a single report.
func (s *DayReportService) GetDayReport(ctx context.Context, reportUuid string) (*models.DayReport, error) {
	dto, err := s.reportRepo.GetByUuid(ctx, reportUuid)
	if err != nil {
		return nil, fmt.Errorf("failed to get day report: %w", err)
	}

	reports, err := s.hydrateReports(ctx, []*models.DayReportDTO{dto})
	if err != nil {
		return nil, err
	}
	return reports[0], nil
}

func (s *DayReportService) hydrateReports(ctx context.Context, dtos []*models.DayReportDTO) ([]*models.DayReport, error) {
	// One resolved map per record collection for the whole pass.
	maps := make(map[models.RecordKind]*safemap.SafeMap[*models.Record], len(recordKinds))
	for _, kind := range recordKinds {
		var all []string
		for _, dto := range dtos {
			all = append(all, uuidsForKind(dto, kind)...)
		}

		recordDTOs, failures, err := s.recordRepos[kind].GetByUuids(ctx, all)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s records: %w", kind, err)
		}
		for _, failure := range failures {
			logger.Log.WithError(failure.Err).WithField("record_uuid", failure.UUID).Warn("Skipping invalid record")
		}

		records := make([]*models.Record, 0, len(recordDTOs))
		for _, recordDTO := range recordDTOs {
			records = append(records, convert.RecordFromDTO(recordDTO))
		}
		maps[kind] = safemap.FromSlice("day report "+string(kind)+" records", records, func(r *models.Record) string {
			return r.Uuid
		})
	}

	reports := make([]*models.DayReport, 0, len(dtos))
	for _, dto := range dtos {
		props := convert.DayReportProps{
			JobsDone:                 s.resolveRecords(maps[models.RecordJobDone], dto, models.RecordJobDone),
			PlansForNextPeriod:       s.resolveRecords(maps[models.RecordPlan], dto, models.RecordPlan),
			ProblemsForCurrentPeriod: s.resolveRecords(maps[models.RecordProblem], dto, models.RecordProblem),
			MentorComments:           s.resolveRecords(maps[models.RecordMentorComment], dto, models.RecordMentorComment),
		}
		reports = append(reports, convert.DayReportFromDTO(dto, props))
	}
	return reports, nil
}

func (s *DayReportService) resolveRecords(m *safemap.SafeMap[*models.Record], dto *models.DayReportDTO, kind models.RecordKind) []*models.Record {
	records, missing := m.GetPresent(uuidsForKind(dto, kind))
	for _, uuid := range missing {
		logger.Log.WithFields(map[string]interface{}{
			"day_report_uuid": dto.Uuid,
			"record_uuid":     uuid,
			"kind":            kind,
		}).Warn("Dropping dangling record reference")
	}
	return records
}

func uuidsForKind(dto *models.DayReportDTO, kind models.RecordKind) []string {
	switch kind {
	case models.RecordJobDone:
		return dto.JobDoneUuids
	case models.RecordPlan:
		return dto.PlanForNextPeriodUuids
	case models.RecordProblem:
		return dto.ProblemForCurrentPeriodUuids
	default:
		return dto.MentorCommentUuids
	}
}

// CreateDayReport creates a report for a way, seeded with one empty record
// per leaf collection so every list starts editable. Report, seed records
// and the way's dayReportUuids append commit in one batch.
func (s *DayReportService) CreateDayReport(ctx context.Context, wayUuid string) (*models.DayReport, error) {
	wayDTO, err := s.wayRepo.GetByUuid(ctx, wayUuid)
	if err != nil {
		return nil, fmt.Errorf("failed to get way for new day report: %w", err)
	}

	seeds := make(map[models.RecordKind]*models.RecordDTO, len(recordKinds))
	for _, kind := range recordKinds {
		seeds[kind] = &models.RecordDTO{
			Uuid:       uuid.NewString(),
			AuthorUuid: wayDTO.OwnerUuid,
		}
	}

	now := time.Now().UTC()
	dto := &models.DayReportDTO{
		Uuid:                         uuid.NewString(),
		CreatedAt:                    now,
		IsDayOff:                     false,
		JobDoneUuids:                 []string{seeds[models.RecordJobDone].Uuid},
		PlanForNextPeriodUuids:       []string{seeds[models.RecordPlan].Uuid},
		ProblemForCurrentPeriodUuids: []string{seeds[models.RecordProblem].Uuid},
		MentorCommentUuids:           []string{seeds[models.RecordMentorComment].Uuid},
		StudentComments:              []string{},
		LearnedForToday:              []string{},
	}

	batch := storage.NewBatch()
	for _, kind := range recordKinds {
		s.recordRepos[kind].CreateInBatch(batch, convert.DocFromRecordDTO(seeds[kind]))
	}
	s.reportRepo.CreateInBatch(batch, convert.DocFromDayReportDTO(dto))
	s.wayRepo.UpdateInBatch(batch, wayDTO.Uuid, bson.M{
		models.WayFieldDayReportUuids: append(wayDTO.DayReportUuids, dto.Uuid),
		models.WayFieldLastUpdate:     now,
	})

	if err := s.store.CommitBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to create day report: %w", err)
	}

	logger.Log.WithFields(map[string]interface{}{
		"way_uuid":        wayUuid,
		"day_report_uuid": dto.Uuid,
	}).Info("Day report created")

	return convert.DayReportFromDTO(dto, convert.DayReportProps{
		JobsDone:                 []*models.Record{convert.RecordFromDTO(seeds[models.RecordJobDone])},
		PlansForNextPeriod:       []*models.Record{convert.RecordFromDTO(seeds[models.RecordPlan])},
		ProblemsForCurrentPeriod: []*models.Record{convert.RecordFromDTO(seeds[models.RecordProblem])},
		MentorComments:           []*models.Record{convert.RecordFromDTO(seeds[models.RecordMentorComment])},
	}), nil
}

// UpdateDayReport writes only the changed fields of a report.
func (s *DayReportService) UpdateDayReport(ctx context.Context, patch models.DayReportPatch) error {
	doc := convert.DayReportPatchToDoc(patch)
	if len(doc) == 0 {
		return nil
	}

	batch := storage.NewBatch()
	s.reportRepo.UpdateInBatch(batch, patch.Uuid, doc)
	if err := s.store.CommitBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to update day report: %w", err)
	}
	return nil
}

// DeleteDayReport removes a report, its four leaf record sets and its entry
// in the owning way, all in one batch so no orphaned leaves can survive.
func (s *DayReportService) DeleteDayReport(ctx context.Context, wayUuid, reportUuid string) error {
	wayDTO, err := s.wayRepo.GetByUuid(ctx, wayUuid)
	if err != nil {
		return fmt.Errorf("failed to get way for day report deletion: %w", err)
	}
	reportDTO, err := s.reportRepo.GetByUuid(ctx, reportUuid)
	if err != nil {
		return fmt.Errorf("failed to get day report for deletion: %w", err)
	}

	batch := storage.NewBatch()
	s.deleteReportInBatch(batch, reportDTO)
	s.wayRepo.UpdateInBatch(batch, wayDTO.Uuid, bson.M{
		models.WayFieldDayReportUuids: removeString(wayDTO.DayReportUuids, reportUuid),
		models.WayFieldLastUpdate:     time.Now().UTC(),
	})

	if err := s.store.CommitBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to delete day report: %w", err)
	}

	logger.Log.WithField("day_report_uuid", reportUuid).Info("Day report deleted")
	return nil
}

// deleteReportInBatch enqueues removal of one report and every leaf it
// references. Shared with way deletion.
func (s *DayReportService) deleteReportInBatch(batch *storage.Batch, dto *models.DayReportDTO) {
	for _, kind := range recordKinds {
		repo := s.recordRepos[kind]
		for _, recordUuid := range uuidsForKind(dto, kind) {
			repo.DeleteInBatch(batch, recordUuid)
		}
	}
	s.reportRepo.DeleteInBatch(batch, dto.Uuid)
}

// AddRecord appends a new leaf record to one of a report's four lists. The
// record document and the list append commit in one batch.
func (s *DayReportService) AddRecord(ctx context.Context, reportUuid string, kind models.RecordKind, authorUuid, description string) (*models.Record, error) {
	reportDTO, err := s.reportRepo.GetByUuid(ctx, reportUuid)
	if err != nil {
		return nil, fmt.Errorf("failed to get day report for new record: %w", err)
	}

	dto := &models.RecordDTO{
		Uuid:        uuid.NewString(),
		AuthorUuid:  authorUuid,
		Description: description,
		IsDone:      false,
	}

	field, uuids := listForKind(reportDTO, kind)

	batch := storage.NewBatch()
	s.recordRepos[kind].CreateInBatch(batch, convert.DocFromRecordDTO(dto))
	s.reportRepo.UpdateInBatch(batch, reportUuid, bson.M{
		field: append(uuids, dto.Uuid),
	})

	if err := s.store.CommitBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to add %s record: %w", kind, err)
	}
	return convert.RecordFromDTO(dto), nil
}

// UpdateRecord writes only the changed fields of a leaf record.
func (s *DayReportService) UpdateRecord(ctx context.Context, kind models.RecordKind, patch models.RecordPatch) error {
	doc := convert.RecordPatchToDoc(patch)
	if len(doc) == 0 {
		return nil
	}

	batch := storage.NewBatch()
	s.recordRepos[kind].UpdateInBatch(batch, patch.Uuid, doc)
	if err := s.store.CommitBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to update %s record: %w", kind, err)
	}
	return nil
}

func listForKind(dto *models.DayReportDTO, kind models.RecordKind) (string, []string) {
	switch kind {
	case models.RecordJobDone:
		return models.DayReportFieldJobDoneUuids, dto.JobDoneUuids
	case models.RecordPlan:
		return models.DayReportFieldPlanForNextPeriodUuids, dto.PlanForNextPeriodUuids
	case models.RecordProblem:
		return models.DayReportFieldProblemForCurrentPeriodUuids, dto.ProblemForCurrentPeriodUuids
	default:
		return models.DayReportFieldMentorCommentUuids, dto.MentorCommentUuids
	}
}
