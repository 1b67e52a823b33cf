package service

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"guardians/training-tracker/internal/domain"
	"guardians/training-tracker/internal/repository"
)

//go:generate mockgen -source=profile_service.go -destination=mocks/profile_service_mocks.go -package=mocks

type ProfileService interface {
	// GetProfile returns nil without an error when the player has not onboarded.
	GetProfile(ctx context.Context, userID string) (*domain.TrainingProfile, error)
	SaveProfile(ctx context.Context, userID string, profile domain.TrainingProfile) (*domain.TrainingProfile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*domain.TrainingProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileService) SaveProfile(ctx context.Context, userID string, profile domain.TrainingProfile) (*domain.TrainingProfile, error) {
	if profile.TrainingDays < 0 || profile.TrainingDays > 7 {
		return nil, fmt.Errorf("%w: trainingDays must be within 0-7", ErrValidation)
	}
	profile.UserID = userID

	if err := s.profileRepo.Upsert(ctx, &profile); err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	stored, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.WithField("userId", userID).Error("Training profile missing right after upsert")
			return nil, ErrNotFoundAfterWrite
		}
		return nil, fmt.Errorf("read back profile: %w", err)
	}
	return stored, nil
}
