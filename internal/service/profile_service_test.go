package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"guardians/training-tracker/internal/domain"
	"guardians/training-tracker/internal/repository"
)

func TestGetProfile_NotOnboarded(t *testing.T) {
	f := newFixture(t)
	svc := NewProfileService(f.profiles)

	f.profiles.EXPECT().GetByUserID(gomock.Any(), "u1").Return(nil, repository.ErrNotFound)
	p, err := svc.GetProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestSaveProfile(t *testing.T) {
	f := newFixture(t)
	svc := NewProfileService(f.profiles)

	f.profiles.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *domain.TrainingProfile) error {
		assert.Equal(t, "u1", p.UserID)
		return nil
	})
	f.profiles.EXPECT().GetByUserID(gomock.Any(), "u1").Return(&domain.TrainingProfile{UserID: "u1", Level: "college"}, nil)

	p, err := svc.SaveProfile(context.Background(), "u1", domain.TrainingProfile{UserID: "someone-else", Level: "college", TrainingDays: 4})
	require.NoError(t, err)
	assert.Equal(t, "college", p.Level)
}

func TestSaveProfile_MissingAfterWrite(t *testing.T) {
	f := newFixture(t)
	svc := NewProfileService(f.profiles)

	f.profiles.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
	f.profiles.EXPECT().GetByUserID(gomock.Any(), "u1").Return(nil, repository.ErrNotFound)

	_, err := svc.SaveProfile(context.Background(), "u1", domain.TrainingProfile{Level: "high school"})
	assert.ErrorIs(t, err, ErrNotFoundAfterWrite)
}

func TestSaveProfile_Validation(t *testing.T) {
	f := newFixture(t)
	svc := NewProfileService(f.profiles)

	_, err := svc.SaveProfile(context.Background(), "u1", domain.TrainingProfile{TrainingDays: 9})
	assert.ErrorIs(t, err, ErrValidation)
}
