package schema

import (
	"errors"
	"testing"
	"time"

	"github.com/Talgatov/MentorWay/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validUserDoc() bson.M {
	return bson.M{
		"uuid":           "u1",
		"name":           "Alice",
		"email":          "alice@example.com",
		"description":    "",
		"createdAt":      time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		"ownWays":        []string{"w1"},
		"mentoringWays":  []string{},
		"favoriteWays":   []string{},
		"hashedPassword": "hashed",
	}
}

func TestParseUser_Valid(t *testing.T) {
	dto, err := ParseUser(validUserDoc())
	require.NoError(t, err)
	assert.Equal(t, "u1", dto.Uuid)
	assert.Equal(t, []string{"w1"}, dto.OwnWays)
}

func TestParseUser_UnknownFieldRejected(t *testing.T) {
	doc := validUserDoc()
	doc["nickname"] = "al"

	_, err := ParseUser(doc)
	require.Error(t, err)

	var violation *ViolationError
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, "user", violation.Entity)
	assert.Equal(t, "nickname", violation.Field)
}

func TestParseUser_MissingRequiredFieldRejected(t *testing.T) {
	doc := validUserDoc()
	delete(doc, "email")

	_, err := ParseUser(doc)
	require.Error(t, err)

	var violation *ViolationError
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, "email", violation.Field)
}

func TestParseUser_OptionalFieldMayBeAbsent(t *testing.T) {
	doc := validUserDoc()
	delete(doc, "hashedPassword")

	_, err := ParseUser(doc)
	require.NoError(t, err)
}

func TestParseUser_WrongKindRejected(t *testing.T) {
	doc := validUserDoc()
	doc["ownWays"] = "w1"

	_, err := ParseUser(doc)
	require.Error(t, err)

	var violation *ViolationError
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, "ownWays", violation.Field)
}

func TestParseWay_AcceptsBSONReadValues(t *testing.T) {
	now := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	doc := bson.M{
		"uuid":                 "w1",
		"name":                 "Learn Go",
		"dayReportUuids":       bson.A{"r1"},
		"ownerUuid":            "u1",
		"mentorUuids":          bson.A{},
		"formerMentorUuids":    bson.A{},
		"mentorRequestUuids":   bson.A{},
		"isCompleted":          false,
		"lastUpdate":           primitive.NewDateTimeFromTime(now),
		"createdAt":            primitive.NewDateTimeFromTime(now),
		"favoriteForUserUuids": bson.A{},
		"wayTags":              bson.A{"go"},
		"jobTags":              bson.A{},
		"copiedFromWayUuid":    "",
		"goalDescription":      "",
		"estimationTime":       int32(120),
		"metricsStringified":   bson.A{},
	}

	dto, err := ParseWay(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, dto.DayReportUuids)
	assert.Equal(t, 120, dto.EstimationTime)
	assert.True(t, dto.CreatedAt.Equal(now))
}

func TestParseRecord_Valid(t *testing.T) {
	dto, err := ParseRecord(bson.M{
		"uuid":        "j1",
		"authorUuid":  "u1",
		"description": "wrote tests",
		"isDone":      true,
		"time":        45,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RecordDTO{
		Uuid:        "j1",
		AuthorUuid:  "u1",
		Description: "wrote tests",
		IsDone:      true,
		Time:        45,
	}, *dto)
}

func TestParseDayReport_UnknownFieldNamed(t *testing.T) {
	doc := bson.M{
		"uuid":                         "r1",
		"createdAt":                    time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
		"isDayOff":                     false,
		"jobDoneUuids":                 []string{},
		"planForNextPeriodUuids":       []string{},
		"problemForCurrentPeriodUuids": []string{},
		"mentorCommentUuids":           []string{},
		"studentComments":              []string{},
		"learnedForToday":              []string{},
		"mood":                         "great",
	}

	_, err := ParseDayReport(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mood")
}
