package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"guardians/training-tracker/internal/domain"
	"guardians/training-tracker/internal/repository"
)

const profileCollectionName = "trainingProfiles"

type mongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository creates a new TrainingProfile repository backed by MongoDB.
func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{
		collection: db.Collection(profileCollectionName),
	}
}

// Upsert replaces the onboarding answers for profile.UserID.
func (r *mongoProfileRepository) Upsert(ctx context.Context, profile *domain.TrainingProfile) error {
	if profile.UserID == "" {
		return errors.New("profile requires userId")
	}

	now := time.Now().UTC()
	filter := bson.M{"userId": profile.UserID}
	update := bson.M{
		"$set": bson.M{
			"level":            profile.Level,
			"primaryRole":      profile.PrimaryRole,
			"handedness":       profile.Handedness,
			"pitchingSchedule": profile.PitchingSchedule,
			"priorities":       profile.Priorities,
			"gymLevel":         profile.GymLevel,
			"workoutType":      profile.WorkoutType,
			"trainingDays":     profile.TrainingDays,
			"hasInjury":        profile.HasInjury,
			"injuryArea":       profile.InjuryArea,
			"injuryRecovery":   profile.InjuryRecovery,
			"updatedAt":        now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// GetByUserID returns repository.ErrNotFound until the user finishes onboarding.
func (r *mongoProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.TrainingProfile, error) {
	var profile domain.TrainingProfile
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// EnsureProfileIndexes creates necessary indexes for the trainingProfiles collection.
func EnsureProfileIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
