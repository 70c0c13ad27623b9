package convert

import (
	"github.com/Talgatov/MentorWay/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// WayProps is the externally resolved reference bundle for one way. The
// access layer fetches and resolves; this package only assembles.
type WayProps struct {
	Owner          *models.UserPreview
	Mentors        map[string]*models.UserPreview
	FormerMentors  map[string]*models.UserPreview
	MentorRequests []*models.UserPreview
	DayReports     []*models.DayReport
}

// WayFromDTO assembles the hydrated way. Deterministic, no I/O.
func WayFromDTO(dto *models.WayDTO, props WayProps) *models.Way {
	return &models.Way{
		Uuid:                 dto.Uuid,
		Name:                 dto.Name,
		Owner:                props.Owner,
		Mentors:              props.Mentors,
		FormerMentors:        props.FormerMentors,
		MentorRequests:       props.MentorRequests,
		DayReports:           props.DayReports,
		IsCompleted:          dto.IsCompleted,
		LastUpdate:           dto.LastUpdate,
		CreatedAt:            dto.CreatedAt,
		FavoriteForUserUuids: dto.FavoriteForUserUuids,
		WayTags:              dto.WayTags,
		JobTags:              dto.JobTags,
		CopiedFromWayUuid:    dto.CopiedFromWayUuid,
		GoalDescription:      dto.GoalDescription,
		EstimationTime:       dto.EstimationTime,
		Metrics:              DecodeMetrics(dto.MetricsStringified),
	}
}

// WayPreviewFromDTO projects a way document into its preview, resolving
// only the first-degree references handed in by the caller.
func WayPreviewFromDTO(dto *models.WayDTO, owner *models.UserPreview, mentors []*models.UserPreview) *models.WayPreview {
	return &models.WayPreview{
		Uuid:                 dto.Uuid,
		Name:                 dto.Name,
		DayReportUuids:       dto.DayReportUuids,
		Owner:                owner,
		Mentors:              mentors,
		FormerMentorUuids:    dto.FormerMentorUuids,
		MentorRequestUuids:   dto.MentorRequestUuids,
		IsCompleted:          dto.IsCompleted,
		LastUpdate:           dto.LastUpdate,
		CreatedAt:            dto.CreatedAt,
		FavoriteForUserUuids: dto.FavoriteForUserUuids,
		WayTags:              dto.WayTags,
		JobTags:              dto.JobTags,
		CopiedFromWayUuid:    dto.CopiedFromWayUuid,
		GoalDescription:      dto.GoalDescription,
		EstimationTime:       dto.EstimationTime,
		Metrics:              DecodeMetrics(dto.MetricsStringified),
	}
}

// WayToDTO collapses a hydrated way back to its stored form: references
// become uuid lists, day reports keep their hydrated order.
func WayToDTO(way *models.Way) *models.WayDTO {
	dayReportUuids := make([]string, 0, len(way.DayReports))
	for _, report := range way.DayReports {
		dayReportUuids = append(dayReportUuids, report.Uuid)
	}

	mentorUuids := make([]string, 0, len(way.Mentors))
	for uuid := range way.Mentors {
		mentorUuids = append(mentorUuids, uuid)
	}

	formerMentorUuids := make([]string, 0, len(way.FormerMentors))
	for uuid := range way.FormerMentors {
		formerMentorUuids = append(formerMentorUuids, uuid)
	}

	mentorRequestUuids := make([]string, 0, len(way.MentorRequests))
	for _, user := range way.MentorRequests {
		mentorRequestUuids = append(mentorRequestUuids, user.Uuid)
	}

	return &models.WayDTO{
		Uuid:                 way.Uuid,
		Name:                 way.Name,
		DayReportUuids:       dayReportUuids,
		OwnerUuid:            way.Owner.Uuid,
		MentorUuids:          mentorUuids,
		FormerMentorUuids:    formerMentorUuids,
		MentorRequestUuids:   mentorRequestUuids,
		IsCompleted:          way.IsCompleted,
		LastUpdate:           way.LastUpdate,
		CreatedAt:            way.CreatedAt,
		FavoriteForUserUuids: way.FavoriteForUserUuids,
		WayTags:              way.WayTags,
		JobTags:              way.JobTags,
		CopiedFromWayUuid:    way.CopiedFromWayUuid,
		GoalDescription:      way.GoalDescription,
		EstimationTime:       way.EstimationTime,
		MetricsStringified:   EncodeMetrics(way.Metrics),
	}
}

// DocFromWayDTO builds the full stored document for a new way.
func DocFromWayDTO(dto *models.WayDTO) bson.M {
	return bson.M{
		models.WayFieldUuid:                 dto.Uuid,
		models.WayFieldName:                 dto.Name,
		models.WayFieldDayReportUuids:       dto.DayReportUuids,
		models.WayFieldOwnerUuid:            dto.OwnerUuid,
		models.WayFieldMentorUuids:          dto.MentorUuids,
		models.WayFieldFormerMentorUuids:    dto.FormerMentorUuids,
		models.WayFieldMentorRequestUuids:   dto.MentorRequestUuids,
		models.WayFieldIsCompleted:          dto.IsCompleted,
		models.WayFieldLastUpdate:           dto.LastUpdate,
		models.WayFieldCreatedAt:            dto.CreatedAt,
		models.WayFieldFavoriteForUserUuids: dto.FavoriteForUserUuids,
		models.WayFieldWayTags:              dto.WayTags,
		models.WayFieldJobTags:              dto.JobTags,
		models.WayFieldCopiedFromWayUuid:    dto.CopiedFromWayUuid,
		models.WayFieldGoalDescription:      dto.GoalDescription,
		models.WayFieldEstimationTime:       dto.EstimationTime,
		models.WayFieldMetricsStringified:   dto.MetricsStringified,
	}
}

// WayPatchToDoc builds the partial update document for a way patch. Only
// set fields appear; the access layer adds the lastUpdate bump.
func WayPatchToDoc(patch models.WayPatch) bson.M {
	doc := bson.M{}
	if patch.Name != nil {
		doc[models.WayFieldName] = *patch.Name
	}
	if patch.DayReportUuids != nil {
		doc[models.WayFieldDayReportUuids] = *patch.DayReportUuids
	}
	if patch.MentorUuids != nil {
		doc[models.WayFieldMentorUuids] = *patch.MentorUuids
	}
	if patch.FormerMentorUuids != nil {
		doc[models.WayFieldFormerMentorUuids] = *patch.FormerMentorUuids
	}
	if patch.MentorRequestUuids != nil {
		doc[models.WayFieldMentorRequestUuids] = *patch.MentorRequestUuids
	}
	if patch.IsCompleted != nil {
		doc[models.WayFieldIsCompleted] = *patch.IsCompleted
	}
	if patch.FavoriteForUserUuids != nil {
		doc[models.WayFieldFavoriteForUserUuids] = *patch.FavoriteForUserUuids
	}
	if patch.WayTags != nil {
		doc[models.WayFieldWayTags] = *patch.WayTags
	}
	if patch.JobTags != nil {
		doc[models.WayFieldJobTags] = *patch.JobTags
	}
	if patch.GoalDescription != nil {
		doc[models.WayFieldGoalDescription] = *patch.GoalDescription
	}
	if patch.EstimationTime != nil {
		doc[models.WayFieldEstimationTime] = *patch.EstimationTime
	}
	if patch.Metrics != nil {
		doc[models.WayFieldMetricsStringified] = EncodeMetrics(*patch.Metrics)
	}
	return doc
}
