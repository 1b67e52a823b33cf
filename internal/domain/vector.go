package domain

import "time"

// VectorItem is an embedded piece of text stored in a user's namespace.
// ID is stable per source (e.g. "gym_session:<id>") so re-indexing overwrites.
type VectorItem struct {
	ID        string            `bson:"itemId" json:"id"`
	Namespace string            `bson:"namespace" json:"namespace"`
	Vector    []float32         `bson:"vector" json:"-"`
	Metadata  map[string]string `bson:"metadata" json:"metadata"`
	UpdatedAt time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// VectorMatch is one similarity search hit.
type VectorMatch struct {
	ID       string            `json:"id"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata"`
}
