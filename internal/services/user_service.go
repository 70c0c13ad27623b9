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
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserService is the access layer for user documents, including the
// credential operations the HTTP layer authenticates with.
type UserService struct {
	store    storage.Store
	userRepo *repository.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(store storage.Store, userRepo *repository.UserRepository) *UserService {
	return &UserService{store: store, userRepo: userRepo}
}

// RegisterUser creates a user with a bcrypt-hashed password and empty way
// lists. The email must not already be taken.
func (s *UserService) RegisterUser(ctx context.Context, name, email, password string) (*models.UserPreview, error) {
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("user with email %s already exists", email)
	} else if err != storage.ErrNotFound {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	dto := &models.UserDTO{
		Uuid:           uuid.NewString(),
		Name:           name,
		Email:          email,
		Description:    "",
		CreatedAt:      time.Now().UTC(),
		OwnWays:        []string{},
		MentoringWays:  []string{},
		FavoriteWays:   []string{},
		HashedPassword: string(hashed),
	}

	batch := storage.NewBatch()
	s.userRepo.CreateInBatch(batch, convert.DocFromUserDTO(dto))
	if err := s.store.CommitBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Log.WithField("user_uuid", dto.Uuid).Info("User registered")
	return convert.UserPreviewFromDTO(dto), nil
}

// CreateUser creates a user document without credentials. RegisterUser is
// the normal signup path; this serves provisioning flows that supply the
// profile directly.
func (s *UserService) CreateUser(ctx context.Context, name, email, description string) (*models.UserPreview, error) {
	dto := &models.UserDTO{
		Uuid:          uuid.NewString(),
		Name:          name,
		Email:         email,
		Description:   description,
		CreatedAt:     time.Now().UTC(),
		OwnWays:       []string{},
		MentoringWays: []string{},
		FavoriteWays:  []string{},
	}

	batch := storage.NewBatch()
	s.userRepo.CreateInBatch(batch, convert.DocFromUserDTO(dto))
	if err := s.store.CommitBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return convert.UserPreviewFromDTO(dto), nil
}

// AuthenticateUser checks the credentials and returns the user on success.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*models.UserPreview, error) {
	dto, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if err == storage.ErrNotFound {
			return nil, fmt.Errorf("invalid email or password")
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(dto.HashedPassword), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	return convert.UserPreviewFromDTO(dto), nil
}

// GetUser fetches one user by uuid.
func (s *UserService) GetUser(ctx context.Context, userUuid string) (*models.UserPreview, error) {
	dto, err := s.userRepo.GetByUuid(ctx, userUuid)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return convert.UserPreviewFromDTO(dto), nil
}

// GetUsers fetches every user. Documents that fail validation are skipped
// with a warning rather than aborting the listing.
func (s *UserService) GetUsers(ctx context.Context) ([]*models.UserPreview, error) {
	dtos, failures, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	for _, failure := range failures {
		logger.Log.WithError(failure.Err).WithField("user_uuid", failure.UUID).Warn("Skipping invalid user")
	}

	previews := make([]*models.UserPreview, 0, len(dtos))
	for _, dto := range dtos {
		previews = append(previews, convert.UserPreviewFromDTO(dto))
	}
	return previews, nil
}

// GetUsersByUuids batch-fetches the named users. Missing uuids are simply
// absent from the result.
func (s *UserService) GetUsersByUuids(ctx context.Context, uuids []string) ([]*models.UserPreview, error) {
	dtos, failures, err := s.userRepo.GetByUuids(ctx, uuids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	for _, failure := range failures {
		logger.Log.WithError(failure.Err).WithField("user_uuid", failure.UUID).Warn("Skipping invalid user")
	}

	previews := make([]*models.UserPreview, 0, len(dtos))
	for _, dto := range dtos {
		previews = append(previews, convert.UserPreviewFromDTO(dto))
	}
	return previews, nil
}

// UpdateUser writes only the changed profile fields of a user.
func (s *UserService) UpdateUser(ctx context.Context, patch models.UserPatch) error {
	doc := convert.UserPatchToDoc(patch)
	if len(doc) == 0 {
		return nil
	}

	batch := storage.NewBatch()
	s.userRepo.UpdateInBatch(batch, patch.Uuid, doc)
	if err := s.store.CommitBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}
