package schema

import (
	"github.com/Talgatov/MentorWay/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// WaySchema describes the way document.
var WaySchema = Descriptor{
	Entity: "way",
	Fields: []Field{
		{Name: models.WayFieldUuid, Kind: KindUuid},
		{Name: models.WayFieldName, Kind: KindString},
		{Name: models.WayFieldDayReportUuids, Kind: KindUuidArray},
		{Name: models.WayFieldOwnerUuid, Kind: KindUuid},
		{Name: models.WayFieldMentorUuids, Kind: KindUuidArray},
		{Name: models.WayFieldFormerMentorUuids, Kind: KindUuidArray},
		{Name: models.WayFieldMentorRequestUuids, Kind: KindUuidArray},
		{Name: models.WayFieldIsCompleted, Kind: KindBool},
		{Name: models.WayFieldLastUpdate, Kind: KindTimestamp},
		{Name: models.WayFieldCreatedAt, Kind: KindTimestamp},
		{Name: models.WayFieldFavoriteForUserUuids, Kind: KindUuidArray},
		{Name: models.WayFieldWayTags, Kind: KindStringArray},
		{Name: models.WayFieldJobTags, Kind: KindStringArray},
		{Name: models.WayFieldCopiedFromWayUuid, Kind: KindString},
		{Name: models.WayFieldGoalDescription, Kind: KindString},
		{Name: models.WayFieldEstimationTime, Kind: KindInt},
		{Name: models.WayFieldMetricsStringified, Kind: KindStringArray},
	},
}

// UserSchema describes the user document.
var UserSchema = Descriptor{
	Entity: "user",
	Fields: []Field{
		{Name: models.UserFieldUuid, Kind: KindUuid},
		{Name: models.UserFieldName, Kind: KindString},
		{Name: models.UserFieldEmail, Kind: KindString},
		{Name: models.UserFieldDescription, Kind: KindString},
		{Name: models.UserFieldCreatedAt, Kind: KindTimestamp},
		{Name: models.UserFieldOwnWays, Kind: KindUuidArray},
		{Name: models.UserFieldMentoringWays, Kind: KindUuidArray},
		{Name: models.UserFieldFavoriteWays, Kind: KindUuidArray},
		{Name: models.UserFieldHashedPassword, Kind: KindString, Optional: true},
	},
}

// DayReportSchema describes the day report document.
var DayReportSchema = Descriptor{
	Entity: "dayReport",
	Fields: []Field{
		{Name: models.DayReportFieldUuid, Kind: KindUuid},
		{Name: models.DayReportFieldCreatedAt, Kind: KindTimestamp},
		{Name: models.DayReportFieldIsDayOff, Kind: KindBool},
		{Name: models.DayReportFieldJobDoneUuids, Kind: KindUuidArray},
		{Name: models.DayReportFieldPlanForNextPeriodUuids, Kind: KindUuidArray},
		{Name: models.DayReportFieldProblemForCurrentPeriodUuids, Kind: KindUuidArray},
		{Name: models.DayReportFieldMentorCommentUuids, Kind: KindUuidArray},
		{Name: models.DayReportFieldStudentComments, Kind: KindStringArray},
		{Name: models.DayReportFieldLearnedForToday, Kind: KindStringArray},
	},
}

// RecordSchema describes all four leaf record documents.
var RecordSchema = Descriptor{
	Entity: "record",
	Fields: []Field{
		{Name: models.RecordFieldUuid, Kind: KindUuid},
		{Name: models.RecordFieldAuthorUuid, Kind: KindUuid},
		{Name: models.RecordFieldDescription, Kind: KindString},
		{Name: models.RecordFieldIsDone, Kind: KindBool},
		{Name: models.RecordFieldTime, Kind: KindInt},
	},
}

// ParseWay validates a raw way document and decodes it into a WayDTO.
func ParseWay(raw bson.M) (*models.WayDTO, error) {
	var dto models.WayDTO
	if err := decode(WaySchema, raw, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

// ParseUser validates a raw user document and decodes it into a UserDTO.
func ParseUser(raw bson.M) (*models.UserDTO, error) {
	var dto models.UserDTO
	if err := decode(UserSchema, raw, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

// ParseDayReport validates a raw day report document and decodes it into a
// DayReportDTO.
func ParseDayReport(raw bson.M) (*models.DayReportDTO, error) {
	var dto models.DayReportDTO
	if err := decode(DayReportSchema, raw, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

// ParseRecord validates a raw leaf record document and decodes it into a
// RecordDTO.
func ParseRecord(raw bson.M) (*models.RecordDTO, error) {
	var dto models.RecordDTO
	if err := decode(RecordSchema, raw, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}
