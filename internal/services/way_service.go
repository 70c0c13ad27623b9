package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
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

// WayService is the access layer for the way aggregate. Every mutation that
// touches a reference list on one document carries the reciprocal update to
// the other side in the same batch, so the denormalized mirrors can never
// drift under a successful commit.
type WayService struct {
	store            storage.Store
	wayRepo          *repository.WayRepository
	userRepo         *repository.UserRepository
	dayReportService *DayReportService
}

// NewWayService creates a new instance of WayService.
func NewWayService(store storage.Store, wayRepo *repository.WayRepository, userRepo *repository.UserRepository, dayReportService *DayReportService) *WayService {
	return &WayService{
		store:            store,
		wayRepo:          wayRepo,
		userRepo:         userRepo,
		dayReportService: dayReportService,
	}
}

// GetWay fetches one way and hydrates its full reference fan-out. All user
// references resolve through a single batched lookup; day reports hydrate
// concurrently with it. A missing owner is fatal; a missing mentor or
// request entry is dropped with a warning.
func (s *WayService) GetWay(ctx context.Context, wayUuid string) (*models.Way, error) {
	dto, err := s.wayRepo.GetByUuid(ctx, wayUuid)
	if err != nil {
		return nil, fmt.Errorf("failed to get way: %w", err)
	}
	return s.hydrateWay(ctx, dto)
}

func (s *WayService) hydrateWay(ctx context.Context, dto *models.WayDTO) (*models.Way, error) {
	neededUsers := make([]string, 0, 1+len(dto.MentorUuids)+len(dto.FormerMentorUuids)+len(dto.MentorRequestUuids))
	neededUsers = append(neededUsers, dto.OwnerUuid)
	for _, list := range [][]string{dto.MentorUuids, dto.FormerMentorUuids, dto.MentorRequestUuids} {
		for _, userUuid := range list {
			neededUsers = appendUnique(neededUsers, userUuid)
		}
	}

	// The two hydration legs are independent; issue them concurrently and
	// join before assembly.
	var (
		wg         sync.WaitGroup
		userDTOs   []*models.UserDTO
		usersErr   error
		dayReports []*models.DayReport
		reportsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		var failures []repository.ParseFailure
		userDTOs, failures, usersErr = s.userRepo.GetByUuids(ctx, neededUsers)
		for _, failure := range failures {
			logger.Log.WithError(failure.Err).WithField("user_uuid", failure.UUID).Warn("Skipping invalid user")
		}
	}()
	go func() {
		defer wg.Done()
		dayReports, reportsErr = s.dayReportService.GetDayReports(ctx, dto.DayReportUuids)
	}()
	wg.Wait()

	if usersErr != nil {
		return nil, fmt.Errorf("failed to resolve way users: %w", usersErr)
	}
	if reportsErr != nil {
		return nil, fmt.Errorf("failed to resolve way day reports: %w", reportsErr)
	}

	previews := make([]*models.UserPreview, 0, len(userDTOs))
	for _, userDTO := range userDTOs {
		previews = append(previews, convert.UserPreviewFromDTO(userDTO))
	}
	users := safemap.FromSlice("way "+dto.Uuid+" users", previews, func(u *models.UserPreview) string {
		return u.Uuid
	})

	// The owner is required; everything else degrades gracefully.
	owner, err := users.Get(dto.OwnerUuid)
	if err != nil {
		return nil, err
	}
	mentors := s.resolveUserSet(users, dto.MentorUuids, "mentor")
	formerMentors := s.resolveUserSet(users, dto.FormerMentorUuids, "former mentor")
	mentorRequests, missing := users.GetPresent(dto.MentorRequestUuids)
	for _, userUuid := range missing {
		logger.Log.WithField("user_uuid", userUuid).Warn("Dropping dangling mentor request reference")
	}

	sort.SliceStable(dayReports, func(i, j int) bool {
		return dayReports[i].CreatedAt.After(dayReports[j].CreatedAt)
	})

	return convert.WayFromDTO(dto, convert.WayProps{
		Owner:          owner,
		Mentors:        mentors,
		FormerMentors:  formerMentors,
		MentorRequests: mentorRequests,
		DayReports:     dayReports,
	}), nil
}

func (s *WayService) resolveUserSet(users *safemap.SafeMap[*models.UserPreview], uuids []string, role string) map[string]*models.UserPreview {
	resolved, missing := users.GetPresent(uuids)
	for _, userUuid := range missing {
		logger.Log.WithFields(map[string]interface{}{
			"user_uuid": userUuid,
			"role":      role,
		}).Warn("Dropping dangling user reference")
	}

	set := make(map[string]*models.UserPreview, len(resolved))
	for _, user := range resolved {
		set[user.Uuid] = user
	}
	return set
}

// GetWays fetches every way and hydrates them concurrently. One item's
// hydration failure never aborts the batch: failed items come back as
// HydrationError values next to the ways that did hydrate.
func (s *WayService) GetWays(ctx context.Context) ([]*models.Way, []error) {
	dtos, parseFailures, err := s.wayRepo.GetAll(ctx)
	if err != nil {
		return nil, []error{fmt.Errorf("failed to fetch ways: %w", err)}
	}

	hydrationErrs := make([]error, 0, len(parseFailures))
	for _, failure := range parseFailures {
		hydrationErrs = append(hydrationErrs, &HydrationError{Entity: "way", UUID: failure.UUID, Err: failure.Err})
	}

	results := make([]*models.Way, len(dtos))
	errs := make([]error, len(dtos))

	var wg sync.WaitGroup
	for i, dto := range dtos {
		wg.Add(1)
		go func(i int, dto *models.WayDTO) {
			defer wg.Done()
			way, err := s.hydrateWay(ctx, dto)
			if err != nil {
				errs[i] = &HydrationError{Entity: "way", UUID: dto.Uuid, Err: err}
				return
			}
			results[i] = way
		}(i, dto)
	}
	wg.Wait()

	ways := make([]*models.Way, 0, len(dtos))
	for i := range dtos {
		if errs[i] != nil {
			logger.Log.WithError(errs[i]).Warn("Skipping way that failed hydration")
			hydrationErrs = append(hydrationErrs, errs[i])
			continue
		}
		ways = append(ways, results[i])
	}
	return ways, hydrationErrs
}

// GetWayPreviews builds the cheap list projection of every way: only
// owners and current mentors are resolved, through one batched user lookup
// shared by the entire pass. Ways with dangling mentors keep rendering;
// a way with a dangling owner is reported and skipped.
func (s *WayService) GetWayPreviews(ctx context.Context) ([]*models.WayPreview, []error) {
	dtos, parseFailures, err := s.wayRepo.GetAll(ctx)
	if err != nil {
		return nil, []error{fmt.Errorf("failed to fetch ways: %w", err)}
	}

	hydrationErrs := make([]error, 0, len(parseFailures))
	for _, failure := range parseFailures {
		hydrationErrs = append(hydrationErrs, &HydrationError{Entity: "way", UUID: failure.UUID, Err: failure.Err})
	}

	var neededUsers []string
	for _, dto := range dtos {
		neededUsers = appendUnique(neededUsers, dto.OwnerUuid)
		for _, mentorUuid := range dto.MentorUuids {
			neededUsers = appendUnique(neededUsers, mentorUuid)
		}
	}

	userDTOs, userFailures, err := s.userRepo.GetByUuids(ctx, neededUsers)
	if err != nil {
		return nil, append(hydrationErrs, fmt.Errorf("failed to resolve preview users: %w", err))
	}
	for _, failure := range userFailures {
		logger.Log.WithError(failure.Err).WithField("user_uuid", failure.UUID).Warn("Skipping invalid user")
	}

	previews := make([]*models.UserPreview, 0, len(userDTOs))
	for _, userDTO := range userDTOs {
		previews = append(previews, convert.UserPreviewFromDTO(userDTO))
	}
	users := safemap.FromSlice("way previews users", previews, func(u *models.UserPreview) string {
		return u.Uuid
	})

	wayPreviews := make([]*models.WayPreview, 0, len(dtos))
	for _, dto := range dtos {
		owner, err := users.Get(dto.OwnerUuid)
		if err != nil {
			hydrationErrs = append(hydrationErrs, &HydrationError{Entity: "way", UUID: dto.Uuid, Err: err})
			continue
		}
		mentors, missing := users.GetPresent(dto.MentorUuids)
		for _, mentorUuid := range missing {
			logger.Log.WithField("user_uuid", mentorUuid).Warn("Dropping dangling mentor reference in preview")
		}
		wayPreviews = append(wayPreviews, convert.WayPreviewFromDTO(dto, owner, mentors))
	}
	return wayPreviews, hydrationErrs
}

// CreateWay creates a way with schema defaults and a fresh uuid. The way
// document and the owner's ownWays append commit in one atomic batch.
func (s *WayService) CreateWay(ctx context.Context, owner *models.UserPreview, base *models.BaseWayData) (*models.Way, error) {
	now := time.Now().UTC()
	dto := &models.WayDTO{
		Uuid:                 uuid.NewString(),
		Name:                 fmt.Sprintf("Way of %s", owner.Name),
		DayReportUuids:       []string{},
		OwnerUuid:            owner.Uuid,
		MentorUuids:          []string{},
		FormerMentorUuids:    []string{},
		MentorRequestUuids:   []string{},
		IsCompleted:          false,
		LastUpdate:           now,
		CreatedAt:            now,
		FavoriteForUserUuids: []string{},
		WayTags:              []string{},
		JobTags:              []string{},
		CopiedFromWayUuid:    "",
		GoalDescription:      "",
		EstimationTime:       0,
		MetricsStringified:   []string{},
	}
	if base != nil {
		applyBaseWayData(dto, base)
	}

	batch := storage.NewBatch()
	s.wayRepo.CreateInBatch(batch, convert.DocFromWayDTO(dto))
	s.userRepo.UpdateInBatch(batch, owner.Uuid, bson.M{
		models.UserFieldOwnWays: append(owner.OwnWays, dto.Uuid),
	})

	if err := s.store.CommitBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to create way: %w", err)
	}

	logger.Log.WithFields(map[string]interface{}{
		"way_uuid":   dto.Uuid,
		"owner_uuid": owner.Uuid,
	}).Info("Way created")

	return convert.WayFromDTO(dto, convert.WayProps{
		Owner:          owner,
		Mentors:        map[string]*models.UserPreview{},
		FormerMentors:  map[string]*models.UserPreview{},
		MentorRequests: []*models.UserPreview{},
		DayReports:     []*models.DayReport{},
	}), nil
}

func applyBaseWayData(dto *models.WayDTO, base *models.BaseWayData) {
	if base.Name != "" {
		dto.Name = base.Name
	}
	if base.WayTags != nil {
		dto.WayTags = base.WayTags
	}
	if base.JobTags != nil {
		dto.JobTags = base.JobTags
	}
	dto.CopiedFromWayUuid = base.CopiedFromWayUuid
	dto.GoalDescription = base.GoalDescription
	dto.EstimationTime = base.EstimationTime
	if base.Metrics != nil {
		dto.MetricsStringified = convert.EncodeMetrics(base.Metrics)
	}
}

// CopyWay creates a new way for newOwner from an existing one, keeping its
// goal, tags and metrics (reset to not done) and recording the lineage in
// copiedFromWayUuid.
func (s *WayService) CopyWay(ctx context.Context, sourceUuid string, newOwner *models.UserPreview) (*models.Way, error) {
	source, err := s.wayRepo.GetByUuid(ctx, sourceUuid)
	if err != nil {
		return nil, fmt.Errorf("failed to get way to copy: %w", err)
	}

	metrics := convert.DecodeMetrics(source.MetricsStringified)
	reset := make([]models.Metric, 0, len(metrics))
	for _, metric := range metrics {
		metric.IsDone = false
		metric.DoneDate = nil
		reset = append(reset, metric)
	}

	return s.CreateWay(ctx, newOwner, &models.BaseWayData{
		Name:              source.Name,
		WayTags:           source.WayTags,
		JobTags:           source.JobTags,
		CopiedFromWayUuid: source.Uuid,
		GoalDescription:   source.GoalDescription,
		EstimationTime:    source.EstimationTime,
		Metrics:           reset,
	})
}

// UpdateWay writes only the changed fields of a way and bumps lastUpdate.
func (s *WayService) UpdateWay(ctx context.Context, patch models.WayPatch) error {
	doc := convert.WayPatchToDoc(patch)
	if len(doc) == 0 {
		return nil
	}
	doc[models.WayFieldLastUpdate] = time.Now().UTC()

	batch := storage.NewBatch()
	s.wayRepo.UpdateInBatch(batch, patch.Uuid, doc)
	if err := s.store.CommitBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to update way: %w", err)
	}

	logger.Log.WithField("way_uuid", patch.Uuid).Info("Way updated")
	return nil
}

// DeleteWay removes a way and detaches it from every document that
// references it: the owner's ownWays and favoriteWays, each mentor's
// mentoringWays, each favoriting user's favoriteWays, plus every child day
// report and its leaf records. Favoriting users are resolved up front so
// the whole fan-out commits as exactly one batch.
func (s *WayService) DeleteWay(ctx context.Context, way *models.Way) error {
	// uuid -> partial update, so a user playing several roles gets one
	// merged update instead of conflicting ones.
	userUpdates := make(map[string]bson.M)

	userUpdates[way.Owner.Uuid] = bson.M{
		models.UserFieldOwnWays:      removeString(way.Owner.OwnWays, way.Uuid),
		models.UserFieldFavoriteWays: removeString(way.Owner.FavoriteWays, way.Uuid),
	}

	for _, mentor := range way.Mentors {
		update, ok := userUpdates[mentor.Uuid]
		if !ok {
			update = bson.M{}
			userUpdates[mentor.Uuid] = update
		}
		update[models.UserFieldMentoringWays] = removeString(mentor.MentoringWays, way.Uuid)
	}

	favoriteUsers, failures, err := s.userRepo.GetByUuids(ctx, way.FavoriteForUserUuids)
	if err != nil {
		return fmt.Errorf("failed to resolve favoriting users: %w", err)
	}
	for _, failure := range failures {
		logger.Log.WithError(failure.Err).WithField("user_uuid", failure.UUID).Warn("Skipping invalid favoriting user")
	}
	for _, user := range favoriteUsers {
		update, ok := userUpdates[user.Uuid]
		if !ok {
			update = bson.M{}
			userUpdates[user.Uuid] = update
		}
		update[models.UserFieldFavoriteWays] = removeString(user.FavoriteWays, way.Uuid)
	}

	batch := storage.NewBatch()
	for userUuid, update := range userUpdates {
		s.userRepo.UpdateInBatch(batch, userUuid, update)
	}
	for _, report := range way.DayReports {
		s.dayReportService.deleteReportInBatch(batch, convert.DayReportToDTO(report))
	}
	s.wayRepo.DeleteInBatch(batch, way.Uuid)

	if err := s.store.CommitBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to delete way: %w", err)
	}

	logger.Log.WithField("way_uuid", way.Uuid).Info("Way deleted")
	return nil
}

// RequestMentoring adds a user to the way's mentor request list. Requests
// have no user-side mirror, so this touches only the way document.
func (s *WayService) RequestMentoring(ctx context.Context, wayUuid, userUuid string) error {
	way, err := s.wayRepo.GetByUuid(ctx, wayUuid)
	if err != nil {
		return fmt.Errorf("failed to get way for mentor request: %w", err)
	}
	if way.OwnerUuid == userUuid {
		return fmt.Errorf("way owner cannot request mentoring of their own way")
	}

	batch := storage.NewBatch()
	s.wayRepo.UpdateInBatch(batch, wayUuid, bson.M{
		models.WayFieldMentorRequestUuids: appendUnique(way.MentorRequestUuids, userUuid),
	})
	if err := s.store.CommitBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to request mentoring: %w", err)
	}
	return nil
}

// DeclineMentorRequest drops a pending mentor request.
func (s *WayService) DeclineMentorRequest(ctx context.Context, wayUuid, userUuid string) error {
	way, err := s.wayRepo.GetByUuid(ctx, wayUuid)
	if err != nil {
		return fmt.Errorf("failed to get way for declining mentor request: %w", err)
	}

	batch := storage.NewBatch()
	s.wayRepo.UpdateInBatch(batch, wayUuid, bson.M{
		models.WayFieldMentorRequestUuids: removeString(way.MentorRequestUuids, userUuid),
	})
	if err := s.store.CommitBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to decline mentor request: %w", err)
	}
	return nil
}

// AddMentor promotes a user to mentor of the way. The way's mentorUuids
// and the user's mentoringWays update in the same batch; a pending request
// from that user is consumed and a former-mentor entry cleared.
func (s *WayService) AddMentor(ctx context.Context, wayUuid, userUuid string) error {
	way, err := s.wayRepo.GetByUuid(ctx, wayUuid)
	if err != nil {
		return fmt.Errorf("failed to get way for adding mentor: %w", err)
	}
	user, err := s.userRepo.GetByUuid(ctx, userUuid)
	if err != nil {
		return fmt.Errorf("failed to get user for adding mentor: %w", err)
	}
	if way.OwnerUuid == userUuid {
		return fmt.Errorf("way owner cannot mentor their own way")
	}

	batch := storage.NewBatch()
	s.wayRepo.UpdateInBatch(batch, wayUuid, bson.M{
		models.WayFieldMentorUuids:        appendUnique(way.MentorUuids, userUuid),
		models.WayFieldMentorRequestUuids: removeString(way.MentorRequestUuids, userUuid),
		models.WayFieldFormerMentorUuids:  removeString(way.FormerMentorUuids, userUuid),
		models.WayFieldLastUpdate:         time.Now().UTC(),
	})
	s.userRepo.UpdateInBatch(batch, userUuid, bson.M{
		models.UserFieldMentoringWays: appendUnique(user.MentoringWays, wayUuid),
	})

	if err := s.store.CommitBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to add mentor: %w", err)
	}

	logger.Log.WithFields(map[string]interface{}{
		"way_uuid":  wayUuid,
		"user_uuid": userUuid,
	}).Info("Mentor added")
	return nil
}

// RemoveMentor retires a mentor into the former-mentor set and strips the
// way from the user's mentoringWays, in one batch.
func (s *WayService) RemoveMentor(ctx context.Context, wayUuid, userUuid string) error {
	way, err := s.wayRepo.GetByUuid(ctx, wayUuid)
	if err != nil {
		return fmt.Errorf("failed to get way for removing mentor: %w", err)
	}
	user, err := s.userRepo.GetByUuid(ctx, userUuid)
	if err != nil {
		return fmt.Errorf("failed to get user for removing mentor: %w", err)
	}

	batch := storage.NewBatch()
	s.wayRepo.UpdateInBatch(batch, wayUuid, bson.M{
		models.WayFieldMentorUuids:       removeString(way.MentorUuids, userUuid),
		models.WayFieldFormerMentorUuids: appendUnique(way.FormerMentorUuids, userUuid),
		models.WayFieldLastUpdate:        time.Now().UTC(),
	})
	s.userRepo.UpdateInBatch(batch, userUuid, bson.M{
		models.UserFieldMentoringWays: removeString(user.MentoringWays, wayUuid),
	})

	if err := s.store.CommitBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to remove mentor: %w", err)
	}
	return nil
}

// AddFavorite marks the way as a favorite of the user, updating both
// mirrors in one batch.
func (s *WayService) AddFavorite(ctx context.Context, wayUuid, userUuid string) error {
	way, err := s.wayRepo.GetByUuid(ctx, wayUuid)
	if err != nil {
		return fmt.Errorf("failed to get way for adding favorite: %w", err)
	}
	user, err := s.userRepo.GetByUuid(ctx, userUuid)
	if err != nil {
		return fmt.Errorf("failed to get user for adding favorite: %w", err)
	}

	batch := storage.NewBatch()
	s.wayRepo.UpdateInBatch(batch, wayUuid, bson.M{
		models.WayFieldFavoriteForUserUuids: appendUnique(way.FavoriteForUserUuids, userUuid),
	})
	s.userRepo.UpdateInBatch(batch, userUuid, bson.M{
		models.UserFieldFavoriteWays: appendUnique(user.FavoriteWays, wayUuid),
	})

	if err := s.store.CommitBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// RemoveFavorite removes the favorite mark from both mirrors in one batch.
func (s *WayService) RemoveFavorite(ctx context.Context, wayUuid, userUuid string) error {
	way, err := s.wayRepo.GetByUuid(ctx, wayUuid)
	if err != nil {
		return fmt.Errorf("failed to get way for removing favorite: %w", err)
	}
	user, err := s.userRepo.GetByUuid(ctx, userUuid)
	if err != nil {
		return fmt.Errorf("failed to get user for removing favorite: %w", err)
	}

	batch := storage.NewBatch()
	s.wayRepo.UpdateInBatch(batch, wayUuid, bson.M{
		models.WayFieldFavoriteForUserUuids: removeString(way.FavoriteForUserUuids, userUuid),
	})
	s.userRepo.UpdateInBatch(batch, userUuid, bson.M{
		models.UserFieldFavoriteWays: removeString(user.FavoriteWays, wayUuid),
	})

	if err := s.store.CommitBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}
