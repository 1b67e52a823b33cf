package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"guardians/training-tracker/internal/domain"
	"guardians/training-tracker/internal/repository"
)

const goalCollectionName = "goals"

// mongoGoalRepository implements repository.GoalRepository
type mongoGoalRepository struct {
	collection *mongo.Collection
}

// NewMongoGoalRepository creates a new Goal repository backed by MongoDB.
func NewMongoGoalRepository(db *mongo.Database) repository.GoalRepository {
	return &mongoGoalRepository{
		collection: db.Collection(goalCollectionName),
	}
}

// keyFilter matches the single slot a goal occupies. Lifetime goals store a
// null targetDateKey, which an equality match on nil finds.
func keyFilter(userID string, discipline domain.Discipline, scope domain.Scope, dateKey *string) bson.M {
	filter := bson.M{
		"userId":        userID,
		"discipline":    discipline,
		"scope":         scope,
		"targetDateKey": nil,
	}
	if dateKey != nil {
		filter["targetDateKey"] = *dateKey
	}
	return filter
}

// FindByUser lists a user's goals, newest first.
func (r *mongoGoalRepository) FindByUser(ctx context.Context, userID string, discipline domain.Discipline) ([]domain.Goal, error) {
	filter := bson.M{"userId": userID}
	if discipline != "" {
		filter["discipline"] = discipline
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	goals := []domain.Goal{}
	if err = cursor.All(ctx, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// Upsert overwrites the goal stored under goal's key, or inserts it.
func (r *mongoGoalRepository) Upsert(ctx context.Context, goal *domain.Goal) error {
	filter := keyFilter(goal.UserID, goal.Discipline, goal.Scope, goal.TargetDateKey)
	update := bson.M{
		"$set": bson.M{
			"targetDate":    goal.TargetDate,
			"totals":        goal.Totals,
			"exerciseGoals": goal.ExerciseGoals,
			"pitchGoals":    goal.PitchGoals,
			"updatedAt":     goal.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":       goal.ID,
			"createdAt": goal.CreatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return repository.ErrUpdateFailed
	}
	return nil
}

// FindByKey reads back the goal in one key slot. When legacy duplicates
// exist the most recently created one wins.
func (r *mongoGoalRepository) FindByKey(ctx context.Context, userID string, discipline domain.Discipline, scope domain.Scope, dateKey *string) (*domain.Goal, error) {
	var goal domain.Goal
	filter := keyFilter(userID, discipline, scope, dateKey)
	findOneOptions := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	err := r.collection.FindOne(ctx, filter, findOneOptions).Decode(&goal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &goal, nil
}

// EnsureGoalIndexes creates necessary indexes for the goals collection.
// The key index is not unique; uniqueness is kept by upserting.
func EnsureGoalIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "discipline", Value: 1},
				{Key: "scope", Value: 1},
				{Key: "targetDateKey", Value: 1},
			},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
