package mongo

import (
	"context"
	"regexp"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gonum.org/v1/gonum/floats"

	"guardians/training-tracker/internal/domain"
	"guardians/training-tracker/internal/repository"
)

const vectorCollectionName = "vectors"

// mongoVectorRepository keeps embeddings next to the rest of the data and
// scores them in process. A namespace holds one player's items, which stays
// in the hundreds to low thousands.
type mongoVectorRepository struct {
	collection *mongo.Collection
}

// NewMongoVectorRepository creates a vector index backed by the vectors collection.
func NewMongoVectorRepository(db *mongo.Database) repository.VectorRepository {
	return &mongoVectorRepository{
		collection: db.Collection(vectorCollectionName),
	}
}

// Upsert writes items keyed by (namespace, item id).
func (r *mongoVectorRepository) Upsert(ctx context.Context, namespace string, items []domain.VectorItem) error {
	if len(items) == 0 {
		return nil
	}

	now := time.Now().UTC()
	models := make([]mongo.WriteModel, 0, len(items))
	for _, item := range items {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"namespace": namespace, "itemId": item.ID}).
			SetUpdate(bson.M{"$set": bson.M{
				"vector":    item.Vector,
				"metadata":  item.Metadata,
				"updatedAt": now,
			}}).
			SetUpsert(true))
	}

	_, err := r.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	return err
}

// Query returns the topK items in namespace most similar to vector by cosine.
func (r *mongoVectorRepository) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]domain.VectorMatch, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"namespace": namespace})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	query := toFloat64(vector)
	matches := []domain.VectorMatch{}
	for cursor.Next(ctx) {
		var item domain.VectorItem
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		matches = append(matches, domain.VectorMatch{
			ID:       item.ID,
			Score:    cosineSimilarity(query, toFloat64(item.Vector)),
			Metadata: item.Metadata,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// DeleteByPrefix removes items in namespace whose id starts with prefix and
// is not listed in keep.
func (r *mongoVectorRepository) DeleteByPrefix(ctx context.Context, namespace, prefix string, keep []string) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, prefixFilter(namespace, prefix, keep))
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func prefixFilter(namespace, prefix string, keep []string) bson.M {
	idFilter := bson.M{"$regex": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(prefix)}}
	if len(keep) > 0 {
		idFilter["$nin"] = keep
	}
	return bson.M{"namespace": namespace, "itemId": idFilter}
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}

// cosineSimilarity is 0 for mismatched dimensions or zero vectors.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}

// EnsureVectorIndexes creates necessary indexes for the vectors collection.
func EnsureVectorIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "namespace", Value: 1}, {Key: "itemId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
