package services

import (
	"time"

	"github.com/Talgatov/MentorWay/internal/convert"
	"github.com/Talgatov/MentorWay/internal/models"
	"github.com/Talgatov/MentorWay/internal/repository"
	"github.com/Talgatov/MentorWay/internal/storage"
	"github.com/Talgatov/MentorWay/internal/storage/inmemory"
)

func newTestServices() (*inmemory.Store, *WayService, *DayReportService, *UserService) {
	store := inmemory.New()
	userRepo := repository.NewUserRepository(store)
	wayRepo := repository.NewWayRepository(store)
	reportRepo := repository.NewDayReportRepository(store)

	userService := NewUserService(store, userRepo)
	dayReportService := NewDayReportService(store, reportRepo, wayRepo)
	wayService := NewWayService(store, wayRepo, userRepo, dayReportService)
	return store, wayService, dayReportService, userService
}

func seedUser(store *inmemory.Store, uuid, name string) *models.UserDTO {
	dto := &models.UserDTO{
		Uuid:           uuid,
		Name:           name,
		Email:          name + "@example.com",
		Description:    "",
		CreatedAt:      time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		OwnWays:        []string{},
		MentoringWays:  []string{},
		FavoriteWays:   []string{},
		HashedPassword: "hashed",
	}
	store.Seed(storage.UsersCollection, convert.DocFromUserDTO(dto))
	return dto
}

func seedWay(store *inmemory.Store, uuid, ownerUuid string) *models.WayDTO {
	dto := &models.WayDTO{
		Uuid:                 uuid,
		Name:                 "Way " + uuid,
		DayReportUuids:       []string{},
		OwnerUuid:            ownerUuid,
		MentorUuids:          []string{},
		FormerMentorUuids:    []string{},
		MentorRequestUuids:   []string{},
		IsCompleted:          false,
		LastUpdate:           time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:            time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		FavoriteForUserUuids: []string{},
		WayTags:              []string{},
		JobTags:              []string{},
		CopiedFromWayUuid:    "",
		GoalDescription:      "",
		EstimationTime:       0,
		MetricsStringified:   []string{},
	}
	store.Seed(storage.WaysCollection, convert.DocFromWayDTO(dto))
	return dto
}

func reseedWay(store *inmemory.Store, dto *models.WayDTO) {
	store.Seed(storage.WaysCollection, convert.DocFromWayDTO(dto))
}

func reseedUser(store *inmemory.Store, dto *models.UserDTO) {
	store.Seed(storage.UsersCollection, convert.DocFromUserDTO(dto))
}

func seedReport(store *inmemory.Store, uuid string, createdAt time.Time) *models.DayReportDTO {
	dto := &models.DayReportDTO{
		Uuid:                         uuid,
		CreatedAt:                    createdAt,
		IsDayOff:                     false,
		JobDoneUuids:                 []string{},
		PlanForNextPeriodUuids:       []string{},
		ProblemForCurrentPeriodUuids: []string{},
		MentorCommentUuids:           []string{},
		StudentComments:              []string{},
		LearnedForToday:              []string{},
	}
	store.Seed(storage.DayReportsCollection, convert.DocFromDayReportDTO(dto))
	return dto
}

func reseedReport(store *inmemory.Store, dto *models.DayReportDTO) {
	store.Seed(storage.DayReportsCollection, convert.DocFromDayReportDTO(dto))
}

func seedRecord(store *inmemory.Store, kind models.RecordKind, uuid, authorUuid string) *models.RecordDTO {
	dto := &models.RecordDTO{
		Uuid:        uuid,
		AuthorUuid:  authorUuid,
		Description: "record " + uuid,
		IsDone:      false,
		Time:        0,
	}
	store.Seed(repository.CollectionForKind(kind), convert.DocFromRecordDTO(dto))
	return dto
}

func stringList(doc map[string]interface{}, field string) []string {
	items, ok := doc[field].([]string)
	if !ok {
		return nil
	}
	return items
}
