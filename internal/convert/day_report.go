package convert

import (
	"github.com/Talgatov/MentorWay/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// DayReportProps is the externally resolved reference bundle for one day
// report: its four leaf lists, already hydrated in stored order.
type DayReportProps struct {
	JobsDone                 []*models.Record
	PlansForNextPeriod       []*models.Record
	ProblemsForCurrentPeriod []*models.Record
	MentorComments           []*models.Record
}

// DayReportFromDTO assembles a day report from its DTO and resolved leaves.
// It performs no fetching.
func DayReportFromDTO(dto *models.DayReportDTO, props DayReportProps) *models.DayReport {
	return &models.DayReport{
		Uuid:                     dto.Uuid,
		CreatedAt:                dto.CreatedAt,
		IsDayOff:                 dto.IsDayOff,
		JobsDone:                 props.JobsDone,
		PlansForNextPeriod:       props.PlansForNextPeriod,
		ProblemsForCurrentPeriod: props.ProblemsForCurrentPeriod,
		MentorComments:           props.MentorComments,
		StudentComments:          dto.StudentComments,
		LearnedForToday:          dto.LearnedForToday,
	}
}

// DayReportToDTO maps a hydrated report back to its stored form, collapsing
// each leaf list to uuids.
func DayReportToDTO(report *models.DayReport) *models.DayReportDTO {
	return &models.DayReportDTO{
		Uuid:                         report.Uuid,
		CreatedAt:                    report.CreatedAt,
		IsDayOff:                     report.IsDayOff,
		JobDoneUuids:                 recordUuids(report.JobsDone),
		PlanForNextPeriodUuids:       recordUuids(report.PlansForNextPeriod),
		ProblemForCurrentPeriodUuids: recordUuids(report.ProblemsForCurrentPeriod),
		MentorCommentUuids:           recordUuids(report.MentorComments),
		StudentComments:              report.StudentComments,
		LearnedForToday:              report.LearnedForToday,
	}
}

func recordUuids(records []*models.Record) []string {
	uuids := make([]string, 0, len(records))
	for _, record := range records {
		uuids = append(uuids, record.Uuid)
	}
	return uuids
}

// DocFromDayReportDTO builds the full stored document for a new day report.
func DocFromDayReportDTO(dto *models.DayReportDTO) bson.M {
	return bson.M{
		models.DayReportFieldUuid:                         dto.Uuid,
		models.DayReportFieldCreatedAt:                    dto.CreatedAt,
		models.DayReportFieldIsDayOff:                     dto.IsDayOff,
		models.DayReportFieldJobDoneUuids:                 dto.JobDoneUuids,
		models.DayReportFieldPlanForNextPeriodUuids:       dto.PlanForNextPeriodUuids,
		models.DayReportFieldProblemForCurrentPeriodUuids: dto.ProblemForCurrentPeriodUuids,
		models.DayReportFieldMentorCommentUuids:           dto.MentorCommentUuids,
		models.DayReportFieldStudentComments:              dto.StudentComments,
		models.DayReportFieldLearnedForToday:              dto.LearnedForToday,
	}
}

// DayReportPatchToDoc builds the partial update document for a report patch.
func DayReportPatchToDoc(patch models.DayReportPatch) bson.M {
	doc := bson.M{}
	if patch.IsDayOff != nil {
		doc[models.DayReportFieldIsDayOff] = *patch.IsDayOff
	}
	if patch.JobDoneUuids != nil {
		doc[models.DayReportFieldJobDoneUuids] = *patch.JobDoneUuids
	}
	if patch.PlanForNextPeriodUuids != nil {
		doc[models.DayReportFieldPlanForNextPeriodUuids] = *patch.PlanForNextPeriodUuids
	}
	if patch.ProblemForCurrentPeriodUuids != nil {
		doc[models.DayReportFieldProblemForCurrentPeriodUuids] = *patch.ProblemForCurrentPeriodUuids
	}
	if patch.MentorCommentUuids != nil {
		doc[models.DayReportFieldMentorCommentUuids] = *patch.MentorCommentUuids
	}
	if patch.StudentComments != nil {
		doc[models.DayReportFieldStudentComments] = *patch.StudentComments
	}
	if patch.LearnedForToday != nil {
		doc[models.DayReportFieldLearnedForToday] = *patch.LearnedForToday
	}
	return doc
}
