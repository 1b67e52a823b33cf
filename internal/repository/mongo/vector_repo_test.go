package mongo

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float64{1, 2, 3}, []float64{2, 4, 6}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosineSimilarity([]float64{1, 0}, []float64{-1, 0}), 1e-9)
	assert.Zero(t, cosineSimilarity([]float64{1, 2}, []float64{1, 2, 3}), "dimension mismatch")
	assert.Zero(t, cosineSimilarity([]float64{0, 0}, []float64{1, 1}), "zero vector")
	assert.Zero(t, cosineSimilarity(nil, nil))
}

func TestToFloat64(t *testing.T) {
	assert.Equal(t, []float64{0.5, -2}, toFloat64([]float32{0.5, -2}))
}

func TestPrefixFilter(t *testing.T) {
	f := prefixFilter("u1", "exercise_goal:abc:", []string{"exercise_goal:abc:squat"})
	assert.Equal(t, "u1", f["namespace"])

	id, ok := f["itemId"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, []string{"exercise_goal:abc:squat"}, id["$nin"])

	re := regexp.MustCompile(id["$regex"].(primitive.Regex).Pattern)
	assert.True(t, re.MatchString("exercise_goal:abc:bench"))
	assert.False(t, re.MatchString("exercise_goal:abcd:bench"))
	assert.False(t, re.MatchString("pitch_goal:abc:FB"))

	_, hasKeep := prefixFilter("u1", "pitch_goal:abc:", nil)["itemId"].(bson.M)["$nin"]
	assert.False(t, hasKeep)
}

func TestPrefixFilter_QuotesMetacharacters(t *testing.T) {
	id := prefixFilter("u1", "a.b:", nil)["itemId"].(bson.M)
	re := regexp.MustCompile(id["$regex"].(primitive.Regex).Pattern)
	assert.True(t, re.MatchString("a.b:1"))
	assert.False(t, re.MatchString("axb:1"))
}
