package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"guardians/training-tracker/internal/domain"
	"guardians/training-tracker/internal/repository"
)

const coachDocCollectionName = "coachDocs"

// mongoCoachDocRepository implements repository.CoachDocRepository
type mongoCoachDocRepository struct {
	collection *mongo.Collection
}

// NewMongoCoachDocRepository creates a new CoachDoc repository backed by MongoDB.
func NewMongoCoachDocRepository(db *mongo.Database) repository.CoachDocRepository {
	return &mongoCoachDocRepository{
		collection: db.Collection(coachDocCollectionName),
	}
}

// Create inserts document metadata. The bytes must already be in the blob store.
func (r *mongoCoachDocRepository) Create(ctx context.Context, doc *domain.CoachDoc) (primitive.ObjectID, error) {
	if doc.UserID == "" || doc.ObjectKey == "" {
		return primitive.NilObjectID, errors.New("coach doc requires userId and objectKey")
	}

	doc.ID = primitive.NewObjectID()
	doc.UploadedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// SetChunkCount records how many chunks were indexed for a document.
func (r *mongoCoachDocRepository) SetChunkCount(ctx context.Context, id primitive.ObjectID, chunks int) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"chunkCount": chunks}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// FindByUser lists a user's documents, newest first.
func (r *mongoCoachDocRepository) FindByUser(ctx context.Context, userID string) ([]domain.CoachDoc, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "uploadedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []domain.CoachDoc{}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// EnsureCoachDocIndexes creates necessary indexes for the coachDocs collection.
func EnsureCoachDocIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "uploadedAt", Value: -1}},
			Options: options.Index(),
		},
		{
			// S3 keys are unique within the bucket
			Keys:    bson.D{{Key: "objectKey", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
