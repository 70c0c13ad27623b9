package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Talgatov/MentorWay/internal/models"
	"github.com/Talgatov/MentorWay/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDayReport_AppendsToWay(t *testing.T) {
	store, _, reportService, _ := newTestServices()
	seedUser(store, "u1", "Alice")
	way := seedWay(store, "w1", "u1")
	before := way.LastUpdate

	report, err := reportService.CreateDayReport(context.Background(), way.Uuid)
	require.NoError(t, err)

	// Every leaf list starts with exactly one empty seed record.
	require.Len(t, report.JobsDone, 1)
	assert.Empty(t, report.JobsDone[0].Description)
	assert.Equal(t, way.OwnerUuid, report.JobsDone[0].AuthorUuid)
	require.Len(t, report.PlansForNextPeriod, 1)
	require.Len(t, report.ProblemsForCurrentPeriod, 1)
	require.Len(t, report.MentorComments, 1)
	assert.Equal(t, 1, store.Count(storage.JobsDoneCollection))
	assert.Equal(t, 1, store.Count(storage.PlansCollection))
	assert.Equal(t, 1, store.Count(storage.ProblemsCollection))
	assert.Equal(t, 1, store.Count(storage.MentorCommentsCollection))

	wayDoc, err := store.GetDocument(context.Background(), storage.WaysCollection, way.Uuid)
	require.NoError(t, err)
	assert.Equal(t, []string{report.Uuid}, stringList(wayDoc, models.WayFieldDayReportUuids))

	lastUpdate, ok := wayDoc[models.WayFieldLastUpdate].(time.Time)
	require.True(t, ok)
	assert.True(t, lastUpdate.After(before))
}

func TestCreateDayReport_CommitFailureLeavesNothing(t *testing.T) {
	store, _, reportService, _ := newTestServices()
	seedUser(store, "u1", "Alice")
	way := seedWay(store, "w1", "u1")
	store.FailCommits(errors.New("network partition"))

	_, err := reportService.CreateDayReport(context.Background(), way.Uuid)
	require.Error(t, err)
	assert.Equal(t, 0, store.Count(storage.DayReportsCollection))
	assert.Equal(t, 0, store.Count(storage.JobsDoneCollection))
	assert.Equal(t, 0, store.Count(storage.MentorCommentsCollection))

	wayDoc, err := store.GetDocument(context.Background(), storage.WaysCollection, way.Uuid)
	require.NoError(t, err)
	assert.Empty(t, stringList(wayDoc, models.WayFieldDayReportUuids))
}

func TestAddRecord_AppendsToReportList(t *testing.T) {
	store, _, reportService, _ := newTestServices()
	seedReport(store, "r1", time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC))

	record, err := reportService.AddRecord(context.Background(), "r1", models.RecordJobDone, "u1", "wrote tests")
	require.NoError(t, err)
	assert.Equal(t, "u1", record.AuthorUuid)
	assert.Equal(t, "wrote tests", record.Description)

	reportDoc, err := store.GetDocument(context.Background(), storage.DayReportsCollection, "r1")
	require.NoError(t, err)
	assert.Equal(t, []string{record.Uuid}, stringList(reportDoc, models.DayReportFieldJobDoneUuids))

	_, err = store.GetDocument(context.Background(), storage.JobsDoneCollection, record.Uuid)
	assert.NoError(t, err)
}

func TestAddRecord_EachKindLandsInItsCollection(t *testing.T) {
	store, _, reportService, _ := newTestServices()
	seedReport(store, "r1", time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC))

	kinds := map[models.RecordKind]string{
		models.RecordJobDone:       storage.JobsDoneCollection,
		models.RecordPlan:          storage.PlansCollection,
		models.RecordProblem:       storage.ProblemsCollection,
		models.RecordMentorComment: storage.MentorCommentsCollection,
	}
	for kind, collection := range kinds {
		record, err := reportService.AddRecord(context.Background(), "r1", kind, "u1", "entry")
		require.NoError(t, err)
		assert.Equal(t, 1, store.Count(collection), string(kind))
		_, err = store.GetDocument(context.Background(), collection, record.Uuid)
		assert.NoError(t, err)
	}
}

func TestUpdateRecord_TouchesOnlyPatchedFields(t *testing.T) {
	store, _, reportService, _ := newTestServices()
	seedRecord(store, models.RecordPlan, "p1", "u1")

	isDone := true
	err := reportService.UpdateRecord(context.Background(), models.RecordPlan, models.RecordPatch{
		Uuid:   "p1",
		IsDone: &isDone,
	})
	require.NoError(t, err)

	doc, err := store.GetDocument(context.Background(), storage.PlansCollection, "p1")
	require.NoError(t, err)
	assert.Equal(t, true, doc[models.RecordFieldIsDone])
	assert.Equal(t, "record p1", doc[models.RecordFieldDescription])
	assert.Equal(t, "u1", doc[models.RecordFieldAuthorUuid])
}

func TestGetDayReport_ResolvesAllLeafLists(t *testing.T) {
	store, _, reportService, _ := newTestServices()
	report := seedReport(store, "r1", time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC))
	job := seedRecord(store, models.RecordJobDone, "j1", "u1")
	plan := seedRecord(store, models.RecordPlan, "p1", "u1")
	comment := seedRecord(store, models.RecordMentorComment, "c1", "u2")
	report.JobDoneUuids = []string{job.Uuid}
	report.PlanForNextPeriodUuids = []string{plan.Uuid}
	report.MentorCommentUuids = []string{comment.Uuid}
	reseedReport(store, report)

	hydrated, err := reportService.GetDayReport(context.Background(), "r1")
	require.NoError(t, err)
	require.Len(t, hydrated.JobsDone, 1)
	assert.Equal(t, job.Uuid, hydrated.JobsDone[0].Uuid)
	require.Len(t, hydrated.PlansForNextPeriod, 1)
	assert.Equal(t, plan.Uuid, hydrated.PlansForNextPeriod[0].Uuid)
	require.Len(t, hydrated.MentorComments, 1)
	assert.Equal(t, comment.Uuid, hydrated.MentorComments[0].Uuid)
	assert.Empty(t, hydrated.ProblemsForCurrentPeriod)
}

func TestGetDayReport_DanglingLeafDropped(t *testing.T) {
	store, _, reportService, _ := newTestServices()
	report := seedReport(store, "r1", time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC))
	job := seedRecord(store, models.RecordJobDone, "j1", "u1")
	report.JobDoneUuids = []string{job.Uuid, "ghost"}
	reseedReport(store, report)

	hydrated, err := reportService.GetDayReport(context.Background(), "r1")
	require.NoError(t, err)
	require.Len(t, hydrated.JobsDone, 1)
	assert.Equal(t, job.Uuid, hydrated.JobsDone[0].Uuid)
}

func TestDeleteDayReport_RemovesLeavesAndWayReference(t *testing.T) {
	store, _, reportService, _ := newTestServices()
	seedUser(store, "u1", "Alice")
	way := seedWay(store, "w1", "u1")
	way.DayReportUuids = []string{"r1", "r2"}
	reseedWay(store, way)

	report := seedReport(store, "r1", time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC))
	job := seedRecord(store, models.RecordJobDone, "j1", "u1")
	problem := seedRecord(store, models.RecordProblem, "pr1", "u1")
	report.JobDoneUuids = []string{job.Uuid}
	report.ProblemForCurrentPeriodUuids = []string{problem.Uuid}
	reseedReport(store, report)
	seedReport(store, "r2", time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC))

	err := reportService.DeleteDayReport(context.Background(), way.Uuid, "r1")
	require.NoError(t, err)

	_, err = store.GetDocument(context.Background(), storage.DayReportsCollection, "r1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = store.GetDocument(context.Background(), storage.JobsDoneCollection, job.Uuid)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = store.GetDocument(context.Background(), storage.ProblemsCollection, problem.Uuid)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	wayDoc, err := store.GetDocument(context.Background(), storage.WaysCollection, way.Uuid)
	require.NoError(t, err)
	assert.Equal(t, []string{"r2"}, stringList(wayDoc, models.WayFieldDayReportUuids))
}

func TestUpdateDayReport_PartialUpdate(t *testing.T) {
	store, _, reportService, _ := newTestServices()
	report := seedReport(store, "r1", time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC))

	isDayOff := true
	comments := []string{"solid day"}
	err := reportService.UpdateDayReport(context.Background(), models.DayReportPatch{
		Uuid:            report.Uuid,
		IsDayOff:        &isDayOff,
		StudentComments: &comments,
	})
	require.NoError(t, err)

	doc, err := store.GetDocument(context.Background(), storage.DayReportsCollection, report.Uuid)
	require.NoError(t, err)
	assert.Equal(t, true, doc[models.DayReportFieldIsDayOff])
	assert.Equal(t, []string{"solid day"}, stringList(doc, models.DayReportFieldStudentComments))
	assert.Empty(t, stringList(doc, models.DayReportFieldJobDoneUuids))
}
