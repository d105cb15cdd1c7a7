package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fathima-sithara/account-service/internal/models"
	"github.com/fathima-sithara/account-service/internal/repository"
	"github.com/fathima-sithara/account-service/internal/storage"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type profileService struct {
	repo   repository.UserRepository
	store  storage.PictureStore
	appURL string
	logger *zap.SugaredLogger
}

func NewProfileService(repo repository.UserRepository, store storage.PictureStore, appURL string, logger *zap.SugaredLogger) ProfileService {
	return &profileService{
		repo:   repo,
		store:  store,
		appURL: strings.TrimRight(appURL, "/"),
		logger: logger,
	}
}

func (s *profileService) Get(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.absolutizePicture(user)
	return user, nil
}

func (s *profileService) Update(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error) {
	id, err := parseID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	set := bson.M{}
	if req.Name != nil {
		// the display name is required, an update may not blank it
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrInvalidName
		}
		set["name"] = name
	}
	if req.Bio != nil {
		set["bio"] = *req.Bio
	}
	if req.Location != nil {
		set["location"] = *req.Location
	}
	if len(set) == 0 {
		return s.Get(ctx, userID)
	}

	user, err := s.repo.UpdateFields(ctx, id, set)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", ErrInternal)
	}
	s.absolutizePicture(user)
	return user, nil
}

func (s *profileService) UploadPicture(ctx context.Context, userID, filename, contentType string, data []byte) (*models.User, error) {
	current, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	stored := fmt.Sprintf("profile-%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
	ref, err := s.store.Save(ctx, stored, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store picture: %w", ErrInternal)
	}

	user, err := s.repo.UpdateFields(ctx, current.ID, bson.M{"profile_picture": ref})
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update picture reference: %w", ErrInternal)
	}

	// replace semantics: the previous picture and its thumbnail go away only
	// after the new one is saved and referenced
	if current.ProfilePicture != "" {
		if derr := s.store.Delete(ctx, current.ProfilePicture); derr != nil {
			s.logger.Warnf("failed to delete old picture for %s: %v", userID, derr)
		}
	}

	s.absolutizePicture(user)
	return user, nil
}

func (s *profileService) DeletePicture(ctx context.Context, userID string) (*models.User, error) {
	current, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	if current.ProfilePicture != "" {
		if derr := s.store.Delete(ctx, current.ProfilePicture); derr != nil {
			s.logger.Warnf("failed to delete picture for %s: %v", userID, derr)
		}
	}

	user, err := s.repo.UpdateFields(ctx, current.ID, bson.M{"profile_picture": ""})
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to clear picture reference: %w", ErrInternal)
	}
	return user, nil
}

func (s *profileService) find(ctx context.Context, userID string) (*models.User, error) {
	id, err := parseID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	user, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", ErrInternal)
	}
	return user, nil
}

// absolutizePicture turns a stored /uploads path into a full URL; already
// absolute references (the S3 backend) pass through.
func (s *profileService) absolutizePicture(u *models.User) {
	if u.ProfilePicture != "" && !strings.HasPrefix(u.ProfilePicture, "http") {
		u.ProfilePicture = s.appURL + u.ProfilePicture
	}
}

func parseID(userID string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(userID)
}
