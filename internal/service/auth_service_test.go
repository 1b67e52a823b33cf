package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"guardians/training-tracker/internal/domain"
	"guardians/training-tracker/internal/repository"
)

const testSecret = "test-secret"

func TestRegister(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthService(f.users, testSecret, time.Hour)
	id := primitive.NewObjectID()

	f.users.EXPECT().GetByEmail(gomock.Any(), "ace@example.com").Return(nil, repository.ErrNotFound)
	f.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *domain.User) (primitive.ObjectID, error) {
		assert.Equal(t, domain.RolePlayer, u.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("fastball99")))
		return id, nil
	})

	user, err := svc.Register(context.Background(), "Ace", " Ace@Example.com ", "fastball99")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Empty(t, user.PasswordHash)
}

func TestRegister_Duplicate(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthService(f.users, testSecret, time.Hour)

	f.users.EXPECT().GetByEmail(gomock.Any(), "ace@example.com").Return(&domain.User{Email: "ace@example.com"}, nil)
	_, err := svc.Register(context.Background(), "Ace", "ace@example.com", "fastball99")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	f.users.EXPECT().GetByEmail(gomock.Any(), "bo@example.com").Return(nil, repository.ErrNotFound)
	f.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(primitive.NilObjectID, repository.ErrDuplicate)
	_, err = svc.Register(context.Background(), "Bo", "bo@example.com", "fastball99")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	_, err = svc.Register(context.Background(), "", "x@example.com", "pw")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthService(f.users, testSecret, time.Hour)
	id := primitive.NewObjectID()
	hash, err := bcrypt.GenerateFromPassword([]byte("fastball99"), bcrypt.MinCost)
	require.NoError(t, err)

	f.users.EXPECT().GetByEmail(gomock.Any(), "ace@example.com").DoAndReturn(func(context.Context, string) (*domain.User, error) {
		return &domain.User{ID: id, Email: "ace@example.com", PasswordHash: string(hash), Role: domain.RolePlayer}, nil
	}).Times(2)

	_, _, err = svc.Login(context.Background(), "ace@example.com", "changeup")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	token, user, err := svc.Login(context.Background(), "ace@example.com", "fastball99")
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)

	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, id.Hex(), claims.UserID)
	assert.Equal(t, domain.RolePlayer, claims.Role)
}

func TestLogin_UnknownEmail(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthService(f.users, testSecret, time.Hour)

	f.users.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, repository.ErrNotFound)
	_, _, err := svc.Login(context.Background(), "nobody@example.com", "pw")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestGetUser(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthService(f.users, testSecret, time.Hour)
	id := primitive.NewObjectID()

	f.users.EXPECT().GetByID(gomock.Any(), id).Return(&domain.User{ID: id, Name: "Ace", PasswordHash: "hash"}, nil)
	user, err := svc.GetUser(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Ace", user.Name)
	assert.Empty(t, user.PasswordHash)

	f.users.EXPECT().GetByID(gomock.Any(), id).Return(nil, repository.ErrNotFound)
	_, err = svc.GetUser(context.Background(), id.Hex())
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.GetUser(context.Background(), "not-an-object-id")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
